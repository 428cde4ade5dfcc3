package id

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"strconv"
	"time"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewTransactionID returns "TXN" + unix millis + 9 random base36 characters.
func NewTransactionID() string {
	return newTransactionID(time.Now())
}

func newTransactionID(now time.Time) string {
	buf := make([]byte, 0, 25)
	buf = append(buf, "TXN"...)
	buf = strconv.AppendInt(buf, now.UnixMilli(), 10)
	max := big.NewInt(int64(len(base36)))
	for i := 0; i < 9; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			n = big.NewInt(0)
		}
		buf = append(buf, base36[n.Int64()])
	}
	return string(buf)
}
