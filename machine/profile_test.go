// SPDX-License-Identifier: EPL-2.0

package machine

import (
	"errors"
	"slices"
	"testing"

	"github.com/ik5/sndsetup/hardware"
)

func TestPresets(t *testing.T) {
	t.Parallel()

	want := []string{"st", "ste", "tt", "falcon", "falcon-fdi", "milan-gsxb", "aranym", "macsound", "xsound", "stfa"}
	if got := Presets(); !slices.Equal(got, want) {
		t.Errorf("Presets() = %v, want %v", got, want)
	}

	for _, name := range want {
		p, ok := Preset(name)
		if !ok || p.Name != name {
			t.Errorf("Preset(%q) = %q, %v", name, p.Name, ok)
		}
	}

	if _, ok := Preset("amiga"); ok {
		t.Error("Preset(amiga) found")
	}
}

func TestPreset_ReturnsCopy(t *testing.T) {
	t.Parallel()

	p, _ := Preset("macsound")
	p.Emulation.Play = hardware.PlaybackNone
	p.ExternalClocks[0] = 1

	again, _ := Preset("macsound")
	if again.Emulation.Play != hardware.PlaybackFalcon {
		t.Error("Preset() shares the emulation descriptor")
	}
	if again.ExternalClocks[0] != 0 {
		t.Error("Preset() shares external clocks")
	}
}

func TestDecodeProfile(t *testing.T) {
	t.Parallel()

	play := 1
	tests := []struct {
		name    string
		input   map[string]any
		check   func(t *testing.T, p Profile)
		wantErr error
	}{
		{
			name:  "falcon with a CD crystal",
			input: map[string]any{"name": "falcon-cd", "base": "falcon", "external_clocks": []int{CrystalCD, 0}},
			check: func(t *testing.T, p Profile) {
				if p.Generation != hardware.GenerationFalcon || p.ExternalClocks != [2]int{CrystalCD, 0} {
					t.Errorf("profile = %+v", p)
				}
			},
		},
		{
			name: "extended API from scratch",
			input: map[string]any{
				"name":           "gsxb-le",
				"generation":     "Milan",
				"sound":          []string{"PSG", "8bit", "16bit", "ext"},
				"bit_depths":     []int{16},
				"formats_16bit":  []string{"signed", "little"},
				"frequency_base": "0",
			},
			check: func(t *testing.T, p Profile) {
				want := hardware.SoundPSG | hardware.Sound8Bit | hardware.Sound16Bit | hardware.SoundExtended
				if p.Sound != want {
					t.Errorf("Sound = %#x, want %#x", p.Sound, want)
				}
				if p.BitDepths != hardware.Depth16 || p.Formats16 != hardware.EncodingSigned|hardware.EncodingLittleEndian {
					t.Errorf("profile = %+v", p)
				}
			},
		},
		{
			name:  "emulation layer",
			input: map[string]any{"name": "xs", "base": "ste", "emulation_play": play},
			check: func(t *testing.T, p Profile) {
				if p.Emulation == nil || p.Emulation.Play != hardware.PlaybackSTE {
					t.Errorf("Emulation = %+v", p.Emulation)
				}
			},
		},
		{
			name:  "stfa with real 16-bit",
			input: map[string]any{"name": "stfa16", "base": "stfa", "stfa_version": 0x0200, "stfa_saved_16bit": true},
			check: func(t *testing.T, p Profile) {
				if p.Shim == nil || p.Shim.SavedSound16Bit == 0 {
					t.Errorf("Shim = %+v", p.Shim)
				}
			},
		},
		{
			name:  "no DMA memory",
			input: map[string]any{"name": "tight", "base": "falcon-fdi", "no_dma_memory": true},
			check: func(t *testing.T, p Profile) {
				if !p.NoDMAMemory || p.ExternalClocks != [2]int{CrystalCD, CrystalDAT} {
					t.Errorf("profile = %+v", p)
				}
			},
		},
		{name: "missing name", input: map[string]any{"base": "st"}, wantErr: ErrInvalidProfile},
		{name: "unknown base", input: map[string]any{"name": "x", "base": "amiga"}, wantErr: ErrUnknownProfile},
		{name: "unknown key", input: map[string]any{"name": "x", "colour": "beige"}, wantErr: ErrInvalidProfile},
		{name: "unknown generation", input: map[string]any{"name": "x", "generation": "Amiga"}, wantErr: ErrInvalidProfile},
		{name: "unknown sound flag", input: map[string]any{"name": "x", "sound": []string{"fm"}}, wantErr: ErrInvalidProfile},
		{name: "bad bit depth", input: map[string]any{"name": "x", "bit_depths": []int{24}}, wantErr: ErrInvalidProfile},
		{name: "bad encoding", input: map[string]any{"name": "x", "formats_8bit": []string{"mu-law"}}, wantErr: ErrInvalidProfile},
		{name: "three clocks", input: map[string]any{"name": "x", "external_clocks": []int{1, 2, 3}}, wantErr: ErrInvalidProfile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := DecodeProfile(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("DecodeProfile() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeProfile() error = %v", err)
			}
			if p.Name != tt.input["name"] {
				t.Errorf("Name = %q, want %q", p.Name, tt.input["name"])
			}
			tt.check(t, p)
		})
	}
}
