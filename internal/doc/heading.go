package doc

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// HeadingLevel is the level of a Heading node. The zero value is Level1.
type HeadingLevel uint8

// Heading levels, outermost first.
const (
	Level1 HeadingLevel = iota
	Level2
	Level3
	Level4
	Level5
	Level6
)

// Int returns the wire value of l, 1 through 6.
func (l HeadingLevel) Int() int {
	if l > Level6 {
		return 6
	}
	return int(l) + 1
}

func (l HeadingLevel) String() string {
	return "Level" + strconv.Itoa(l.Int())
}

// DecodeHeadingLevel maps a wire integer onto a level. It never fails:
// 0 and 1 are Level1, 2 through 5 map directly, and every other value,
// negatives included, is Level6.
func DecodeHeadingLevel(n int64) HeadingLevel {
	switch n {
	case 0, 1:
		return Level1
	case 2:
		return Level2
	case 3:
		return Level3
	case 4:
		return Level4
	case 5:
		return Level5
	default:
		return Level6
	}
}

// MarshalJSON encodes l as a bare integer.
func (l HeadingLevel) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(l.Int())), nil
}

// UnmarshalJSON accepts any JSON integer. Non-integers are an ErrIntegrity.
func (l *HeadingLevel) UnmarshalJSON(data []byte) error {
	decoded, err := decodeHeadingLevel(data, "")
	if err != nil {
		return err
	}
	*l = decoded
	return nil
}

func decodeHeadingLevel(raw json.RawMessage, path string) (HeadingLevel, error) {
	n, err := strconv.ParseInt(string(bytes.TrimSpace(raw)), 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Level6, nil
		}
		return Level1, integrityErr(path, "heading level must be an integer, got %s", raw)
	}
	return DecodeHeadingLevel(n), nil
}
