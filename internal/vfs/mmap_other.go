//go:build !unix

package vfs

import "os"

func mapFile(name string) (Mapping, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return byteMapping(data), nil
}
