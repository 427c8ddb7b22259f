// Package bytesize parses and formats humane byte quantities such as
// "6MB", "10Mi" or plain "1024".
package bytesize

import (
	"fmt"
	"strconv"
	"strings"
)

// ByteSize is a byte count that unmarshals from humane strings. Decimal
// suffixes (K, KB, M, MB, ...) multiply by 1000, binary suffixes (Ki,
// KiB, Mi, MiB, ...) by 1024; a bare number or a "B" suffix is taken as
// bytes. Suffixes are case-insensitive and fractional values are allowed
// ("1.5Gi").
type ByteSize uint64

const (
	B  ByteSize = 1
	KB ByteSize = 1000
	MB ByteSize = 1000 * KB
	GB ByteSize = 1000 * MB
	TB ByteSize = 1000 * GB

	KiB ByteSize = 1024
	MiB ByteSize = 1024 * KiB
	GiB ByteSize = 1024 * MiB
	TiB ByteSize = 1024 * GiB
)

var suffixes = map[string]ByteSize{
	"":    B,
	"b":   B,
	"k":   KB,
	"kb":  KB,
	"m":   MB,
	"mb":  MB,
	"g":   GB,
	"gb":  GB,
	"t":   TB,
	"tb":  TB,
	"ki":  KiB,
	"kib": KiB,
	"mi":  MiB,
	"mib": MiB,
	"gi":  GiB,
	"gib": GiB,
	"ti":  TiB,
	"tib": TiB,
}

// ParseByteSize converts a humane size string to a ByteSize.
func ParseByteSize(s string) (ByteSize, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("empty byte size string")
	}

	// Split at the first rune that can't start a number. Everything from
	// there on is the unit suffix.
	split := len(trimmed)
	for i, r := range trimmed {
		if (r < '0' || r > '9') && r != '.' {
			split = i
			break
		}
	}

	number := trimmed[:split]
	unit := strings.ToLower(strings.TrimSpace(trimmed[split:]))

	factor, ok := suffixes[unit]
	if !ok {
		return 0, fmt.Errorf("unknown byte size unit: %q", strings.TrimSpace(trimmed[split:]))
	}

	if strings.Contains(number, ".") {
		f, err := strconv.ParseFloat(number, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number in byte size: %q", number)
		}
		return ByteSize(f * float64(factor)), nil
	}

	n, err := strconv.ParseUint(number, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number in byte size: %q", number)
	}
	return ByteSize(n) * factor, nil
}

// UnmarshalText lets ByteSize fields decode from config strings.
func (b *ByteSize) UnmarshalText(text []byte) error {
	parsed, err := ParseByteSize(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// String renders the size with the largest fitting binary suffix.
func (b ByteSize) String() string {
	switch {
	case b >= TiB:
		return fmt.Sprintf("%.2fTiB", float64(b)/float64(TiB))
	case b >= GiB:
		return fmt.Sprintf("%.2fGiB", float64(b)/float64(GiB))
	case b >= MiB:
		return fmt.Sprintf("%.2fMiB", float64(b)/float64(MiB))
	case b >= KiB:
		return fmt.Sprintf("%.2fKiB", float64(b)/float64(KiB))
	default:
		return fmt.Sprintf("%dB", uint64(b))
	}
}

// Uint64 returns the raw byte count.
func (b ByteSize) Uint64() uint64 {
	return uint64(b)
}

// Int64 returns the byte count as int64 for APIs that size things signed.
func (b ByteSize) Int64() int64 {
	return int64(b)
}
