//go:build !linux && !darwin

package interaction

import "errors"

type termState struct{}

func (kr *KeyboardReader) enableRawMode() error {
	return errors.New("raw terminal mode is not supported on this platform")
}

func (kr *KeyboardReader) disableRawMode() error {
	return nil
}
