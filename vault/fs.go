package vault

import "os"

func mkdirMount(dir string) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return ErrMediumGone
	}
	return nil
}

func removeAll(path string) error {
	return os.RemoveAll(path)
}
