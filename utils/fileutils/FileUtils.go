// Package fileutils provides utilities for persisting gob encoded data
package fileutils

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"
)

// create opens a new file for writing
var create = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// SaveGob gob encodes data to a new file at path. The file is closed
// before returning, and a failure to close it is returned as an error
// since the data may not have been written.
func SaveGob(path string, data interface{}) (err error) {
	file, err := create(path)
	if err != nil {
		return fmt.Errorf("saveGob: could not create file: %v", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("saveGob: could not close file: %v", closeErr)
		}
	}()

	if err := gob.NewEncoder(file).Encode(data); err != nil {
		return fmt.Errorf("saveGob: could not encode data: %v", err)
	}
	return nil
}

// LoadGob decodes the gob encoded data in the file at path into data
func LoadGob(path string, data interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("loadGob: could not open file: %v", err)
	}
	defer file.Close()

	if err := gob.NewDecoder(file).Decode(data); err != nil {
		return fmt.Errorf("loadGob: could not decode data: %v", err)
	}
	return nil
}
