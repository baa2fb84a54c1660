// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.


package encoding

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var ErrImageEmpty = errors.New(f("image has no origin"))

// Image is a program image: the words are loaded sequentially starting at
// Origin.
type Image struct {
	Origin uint16
	Words  []uint16
}

// ReadImage decodes a big-endian origin followed by big-endian words. The
// image ends at the first clean end of input or once it reaches the top of
// the 16-bit address space; a trailing odd byte is dropped.
func ReadImage(reader io.Reader) (*Image, error) {
	scratch := make([]byte, 2)

	if _, err := io.ReadFull(reader, scratch); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrImageEmpty
		}

		return nil, fmt.Errorf("%s: %w", f("reading origin"), err)
	}

	image := &Image{Origin: binary.BigEndian.Uint16(scratch)}
	limit := 1<<16 - int(image.Origin)

	for len(image.Words) < limit {
		_, err := io.ReadFull(reader, scratch)

		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return image, nil
		} else if err != nil {
			return nil, fmt.Errorf("%s: %w", f("reading word %#04x", len(image.Words)), err)
		}

		image.Words = append(image.Words, binary.BigEndian.Uint16(scratch))
	}

	return image, nil
}

// Encode writes the image in the same framing ReadImage consumes.
func (image *Image) Encode(writer io.Writer) error {
	buf := make([]byte, 2*(len(image.Words)+1))
	binary.BigEndian.PutUint16(buf, image.Origin)

	for i, word := range image.Words {
		binary.BigEndian.PutUint16(buf[2*(i+1):], word)
	}

	_, err := writer.Write(buf)
	return err
}
