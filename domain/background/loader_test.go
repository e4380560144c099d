package background

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseSource(t *testing.T) {
	cases := map[string]Source{
		"":                     {Kind: KindEmbedded},
		"embedded":             {Kind: KindEmbedded},
		"screen":               {Kind: KindScreen},
		"file:/tmp/a.png":      {Kind: KindFile, Path: "/tmp/a.png"},
		"photos/b.jpg":         {Kind: KindFile, Path: "photos/b.jpg"},
		"screen:10,20,300,200": {Kind: KindScreen, Region: image.Rect(10, 20, 310, 220)},
	}
	for in, want := range cases {
		got, err := ParseSource(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	for _, bad := range []string{"file:", "screen:1,2,3", "screen:0,0,0,10", "screen:a,b,c,d"} {
		_, err := ParseSource(bad)
		require.Error(t, err, bad)
	}
	require.Equal(t, "screen:10,20,300,200", Source{Kind: KindScreen, Region: image.Rect(10, 20, 310, 220)}.String())
	require.Equal(t, "file:/x.png", Source{Kind: KindFile, Path: "/x.png"}.String())
}

func TestLoader_NotReadyUntilPublished(t *testing.T) {
	l := NewLoader(nil)
	require.False(t, l.Ready())
	require.Nil(t, l.Image())
	require.True(t, l.Size().Empty())

	var calls atomic.Int32
	l.OnReady(func(image.Image) { calls.Add(1) })
	l.Set(image.NewRGBA(image.Rect(0, 0, 30, 20)), Source{Kind: KindEmbedded})

	require.True(t, l.Ready())
	require.Equal(t, 30, l.Size().Width)
	require.Equal(t, int32(1), calls.Load())

	// late listeners fire immediately
	l.OnReady(func(image.Image) { calls.Add(1) })
	require.Equal(t, int32(2), calls.Load())
}

func TestLoader_StartEmbedded(t *testing.T) {
	l := NewLoader(nil)
	l.Start(context.Background(), Source{Kind: KindEmbedded})
	require.Eventually(t, l.Ready, 2*time.Second, 10*time.Millisecond)
	require.False(t, l.Size().Empty())
	src, ok := l.Source()
	require.True(t, ok)
	require.Equal(t, KindEmbedded, src.Kind)
}

func TestLoader_StartFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bg.png")
	img := image.NewRGBA(image.Rect(0, 0, 12, 8))
	img.Set(1, 1, color.White)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	l := NewLoader(nil)
	l.Start(context.Background(), Source{Kind: KindFile, Path: path})
	require.Eventually(t, l.Ready, 2*time.Second, 10*time.Millisecond)
	require.Equal(t, 12, l.Size().Width)
	require.Equal(t, 8, l.Size().Height)
}

func TestLoader_MissingFileReportsError(t *testing.T) {
	l := NewLoader(nil)
	l.Start(context.Background(), Source{Kind: KindFile, Path: filepath.Join(t.TempDir(), "missing.png")})
	require.Eventually(t, func() bool { return l.Err() != nil }, 2*time.Second, 10*time.Millisecond)
	require.False(t, l.Ready())
}

func TestLoad_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Load(ctx, Source{Kind: KindEmbedded}, nil)
	require.ErrorIs(t, err, context.Canceled)
}
