package catalog

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/jpeg"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	avatarSize        = 256
	avatarJPEGQuality = 85
)

// normalizeAvatar уменьшает загруженную картинку (data URL) до квадратной миниатюры.
// Обычные URL сохраняются как есть.
func normalizeAvatar(avatar string) (string, error) {
	avatar = strings.TrimSpace(avatar)
	if !strings.HasPrefix(avatar, "data:image/") {
		return avatar, nil
	}

	comma := strings.IndexByte(avatar, ',')
	if comma < 0 || !strings.Contains(avatar[:comma], ";base64") {
		return "", fmt.Errorf("%w: malformed data url", ErrInvalidAvatar)
	}
	raw, err := base64.StdEncoding.DecodeString(avatar[comma+1:])
	if err != nil {
		return "", fmt.Errorf("%w: base64: %v", ErrInvalidAvatar, err)
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: decode: %v", ErrInvalidAvatar, err)
	}
	thumb := imaging.Fill(img, avatarSize, avatarSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: avatarJPEGQuality}); err != nil {
		return "", fmt.Errorf("%w: encode: %v", ErrInvalidAvatar, err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
