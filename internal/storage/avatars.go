package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrUnsupportedType means the upload was not a PNG or JPEG.
var ErrUnsupportedType = errors.New("only PNG or JPG files are allowed")

var extensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
}

// AvatarStore keeps avatar images on disk under root, one file per
// user at {userID}/avatar.{ext}. Writes overwrite whatever is there;
// concurrent uploads for the same user race on last-write-wins, same
// as the hosted bucket this stands in for.
type AvatarStore struct {
	root string
}

func NewAvatarStore(root string) (*AvatarStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create avatar dir: %w", err)
	}
	return &AvatarStore{root: root}, nil
}

// Root returns the directory avatars are stored under, for serving.
func (a *AvatarStore) Root() string {
	return a.root
}

// Save writes the avatar for userID and returns its path relative to
// the store root, e.g. "abc123/avatar.png". The extension comes from
// the declared content type; anything but PNG or JPEG is rejected.
// A previous avatar with a different extension is removed so a user
// never has two.
func (a *AvatarStore) Save(userID, contentType string, r io.Reader) (string, error) {
	ext, ok := extensions[contentType]
	if !ok {
		return "", ErrUnsupportedType
	}

	dir := filepath.Join(a.root, userID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create user avatar dir: %w", err)
	}

	for _, other := range extensions {
		if other == ext {
			continue
		}
		_ = os.Remove(filepath.Join(dir, "avatar."+other))
	}

	path := filepath.Join(dir, "avatar."+ext)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create avatar file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write avatar file: %w", err)
	}

	return userID + "/avatar." + ext, nil
}
