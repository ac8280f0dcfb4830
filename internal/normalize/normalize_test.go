package normalize

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := map[string]int64{
		"$ 12.345":  12345,
		"12 000 $":  12000,
		"":          0,
		"gratis":    0,
		"ARS 1,5":   15,
		"0042":      42,
		"  7 $ ":    7,
		"-300":      300,
		"1.234.567": 1234567,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParsePrice(in), "ParsePrice(%q)", in)
	}
}

func TestFormatThousands(t *testing.T) {
	tests := map[int64]string{
		0:        "0",
		7:        "7",
		999:      "999",
		1000:     "1 000",
		24500:    "24 500",
		123456:   "123 456",
		1234567:  "1 234 567",
		-1234567: "-1 234 567",
		-12:      "-12",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatThousands(in), "FormatThousands(%d)", in)
	}
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "24 500 $", FormatCurrency(24500))
	assert.Equal(t, "0 $", FormatCurrency(0))
}

func TestRoundPrice(t *testing.T) {
	assert.Equal(t, int64(13), RoundPrice(12.5))
	assert.Equal(t, int64(12), RoundPrice(12.49))
	assert.Equal(t, int64(0), RoundPrice(-3))
}

func TestNormalizeImagePath(t *testing.T) {
	page, err := url.Parse("http://shop.test/index.html")
	require.NoError(t, err)

	t.Run("empty -> nil", func(t *testing.T) {
		assert.Nil(t, NormalizeImagePath("  ", page))
	})

	t.Run("file url keeps file name", func(t *testing.T) {
		got := NormalizeImagePath("file:///C:/Users/me/site/img/boxeo.png", page)
		require.NotNil(t, got)
		assert.Equal(t, "img/boxeo.png", *got)
	})

	t.Run("windows drive path", func(t *testing.T) {
		got := NormalizeImagePath(`C:\site\img\guantes.jpg`, page)
		require.NotNil(t, got)
		assert.Equal(t, "img/guantes.jpg", *got)
	})

	t.Run("same origin absolute", func(t *testing.T) {
		got := NormalizeImagePath("http://shop.test//img/a.png", page)
		require.NotNil(t, got)
		assert.Equal(t, "img/a.png", *got)
	})

	t.Run("relative resolves against page", func(t *testing.T) {
		got := NormalizeImagePath("img/a.png", page)
		require.NotNil(t, got)
		assert.Equal(t, "img/a.png", *got)
	})

	t.Run("other origin unchanged", func(t *testing.T) {
		got := NormalizeImagePath("https://cdn.example.com/a.png", page)
		require.NotNil(t, got)
		assert.Equal(t, "https://cdn.example.com/a.png", *got)
	})

	t.Run("no page keeps relative", func(t *testing.T) {
		got := NormalizeImagePath("img/a.png", nil)
		require.NotNil(t, got)
		assert.Equal(t, "img/a.png", *got)
	})
}
