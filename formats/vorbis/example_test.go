// SPDX-License-Identifier: EPL-2.0

package vorbis_test

import (
	"fmt"
	"log"
	"os"

	"github.com/ik5/sndsetup/audio"
	"github.com/ik5/sndsetup/formats/vorbis"
)

// Example shows the spec a Vorbis file asks for.
func Example() {
	f, err := os.Open("input.ogg")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	desired, err := vorbis.Prober{}.Probe(f, 1024)
	if err != nil {
		log.Fatal(err)
	}

	if err := desired.Validate(audio.DefaultPolicy().MaxFrequency); err != nil {
		log.Fatal(err)
	}
	fmt.Println(desired)
}
