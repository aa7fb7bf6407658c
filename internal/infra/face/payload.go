// Package face talks to the external face-recognition service and matches
// descriptors in process.
package face

import (
	"bytes"
	"encoding/base64"
	"io"
	"strings"

	domainerrors "faceauth/internal/domain/errors"
	"faceauth/internal/errors"
	"faceauth/internal/util"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
)

// maxInflatedSize caps a decompressed payload at 16MB.
const maxInflatedSize = 16 << 20

var payloadEncodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// DecodePayload turns a client face payload (base64 of zlib or raw deflate data)
// into the image data URL it carries.
func DecodePayload(payload string) (string, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return "", domainerrors.ErrInvalidFacePayload.WrapMessage("empty payload")
	}

	compressed, err := decodeBase64(payload)
	if err != nil {
		return "", err
	}

	inflated, err := inflate(compressed)
	if err != nil {
		return "", err
	}
	if len(inflated) == 0 {
		return "", domainerrors.ErrInvalidFacePayload.WrapMessage("payload inflated to nothing")
	}

	return string(inflated), nil
}

// EncodePayload is the inverse of DecodePayload using zlib framing.
func EncodePayload(image string) (string, error) {
	var buf bytes.Buffer
	writer := zlib.NewWriter(&buf)
	if _, err := writer.Write([]byte(image)); err != nil {
		return "", errors.WithStack(err)
	}
	if err := writer.Close(); err != nil {
		return "", errors.WithStack(err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func decodeBase64(payload string) ([]byte, error) {
	for _, encoding := range payloadEncodings {
		if decoded, err := encoding.DecodeString(payload); err == nil {
			return decoded, nil
		}
	}

	return nil, domainerrors.ErrInvalidFacePayload.WrapMessage("payload is not base64")
}

func inflate(compressed []byte) ([]byte, error) {
	if reader, err := zlib.NewReader(bytes.NewReader(compressed)); err == nil {
		defer reader.Close()

		return readLimited(reader)
	}

	// Browsers using pako.deflateRaw send headerless streams.
	reader := flate.NewReader(bytes.NewReader(compressed))
	defer reader.Close()

	return readLimited(reader)
}

func readLimited(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(reader, maxInflatedSize+1))
	if err != nil {
		return nil, domainerrors.ErrInvalidFacePayload.WrapMessage("payload is not deflate data")
	}
	if len(data) > maxInflatedSize {
		return nil, domainerrors.ErrInvalidFacePayload.WrapMessage("payload exceeds " + util.FormatSize(maxInflatedSize))
	}

	return data, nil
}
