package utils

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateSessionToken(t *testing.T) {
	token, err := GenerateSessionToken()
	require.NoError(t, err)
	require.Len(t, token, 64)
	require.Regexp(t, regexp.MustCompile(`^[0-9a-f]{64}$`), token)

	other, err := GenerateSessionToken()
	require.NoError(t, err)
	require.NotEqual(t, token, other)
}

func TestGenerateShareToken(t *testing.T) {
	before := time.Now().UnixMilli()
	token := GenerateShareToken()
	after := time.Now().UnixMilli()

	parts := strings.SplitN(token, "-", 2)
	require.Len(t, parts, 2)

	millis, err := strconv.ParseInt(parts[0], 10, 64)
	require.NoError(t, err)
	require.GreaterOrEqual(t, millis, before)
	require.LessOrEqual(t, millis, after)

	require.Len(t, parts[1], 16)
	require.Regexp(t, regexp.MustCompile(`^[0-9a-f]{16}$`), parts[1])
}
