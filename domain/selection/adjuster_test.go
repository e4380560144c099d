package selection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireCentered(t *testing.T, res Result) {
	t.Helper()
	ox, oy := res.Original.Center()
	ax, ay := res.Adjusted.Center()
	require.InDelta(t, ox, ax, 1e-9, "x center moved for %v -> %v", res.Original, res.Adjusted)
	require.InDelta(t, oy, ay, 1e-9, "y center moved for %v -> %v", res.Original, res.Adjusted)
}

func TestAdjust_ProRoundsUpToGrid(t *testing.T) {
	a := NewAdjuster(DefaultSettings())
	res := a.Adjust(Rect{X: 10, Y: 20, Width: 100, Height: 50}, Size{Width: 800, Height: 600})

	require.Equal(t, ModePro, res.Mode)
	require.Equal(t, 128.0, res.Adjusted.Width)
	require.Equal(t, 64.0, res.Adjusted.Height)
	require.Equal(t, -4.0, res.Adjusted.X)
	require.Equal(t, 13.0, res.Adjusted.Y)
	require.Equal(t, "PRO - 100x50 - 128x64", res.Label)
	require.Equal(t, "2:1", res.Fraction)
	require.Equal(t, Size{Width: 800, Height: 600}, res.Image)
	requireCentered(t, res)
}

func TestAdjust_ProSmallestMultiple(t *testing.T) {
	for _, policy := range Policies() {
		s := DefaultSettings()
		s.Policy = policy
		a := NewAdjuster(s)
		for w := 1; w <= 1440; w += 37 {
			for _, h := range []int{1, 31, 32, 33, 640, 1439, 1440} {
				res := a.Adjust(Rect{X: 5, Y: 7, Width: float64(w), Height: float64(h)}, Size{})
				require.Equal(t, ModePro, res.Mode)
				aw, ah := int(res.Adjusted.Width), int(res.Adjusted.Height)
				require.Zero(t, aw%32)
				require.Zero(t, ah%32)
				require.GreaterOrEqual(t, aw, w)
				require.Less(t, aw-w, 32)
				require.GreaterOrEqual(t, ah, h)
				require.Less(t, ah-h, 32)
				requireCentered(t, res)
			}
		}
	}
}

func TestAdjust_UltraSquareUnadjusted(t *testing.T) {
	for _, policy := range Policies() {
		s := DefaultSettings()
		s.Policy = policy
		res := NewAdjuster(s).Adjust(Rect{X: 0, Y: 0, Width: 2000, Height: 2000}, Size{})
		require.Equal(t, ModeUltra, res.Mode, policy.String())
		require.Equal(t, res.Original, res.Adjusted, policy.String())
		require.Equal(t, "Ultra - 2000x2000 - 1:1", res.Label, policy.String())
		require.False(t, res.Changed())
	}
}

func TestAdjust_InRangeRatiosUnadjusted(t *testing.T) {
	cases := []Rect{
		{Width: 2100, Height: 900},  // exactly 21:9
		{Width: 900, Height: 2100},  // exactly 9:21
		{Width: 1920, Height: 1080}, // 16:9 but > 1440 wide
		{Width: 1500, Height: 3000},
	}
	for _, policy := range Policies() {
		s := DefaultSettings()
		s.Policy = policy
		a := NewAdjuster(s)
		for _, r := range cases {
			res := a.Adjust(r, Size{})
			require.Equal(t, ModeUltra, res.Mode, "%s %v", policy, r)
			require.Equal(t, r.Width, res.Adjusted.Width)
			require.Equal(t, r.Height, res.Adjusted.Height)
			requireCentered(t, res)
		}
	}
}

func TestAdjust_ClampToRatioScalesWideDown(t *testing.T) {
	res := NewAdjuster(DefaultSettings()).Adjust(Rect{X: 100, Y: 100, Width: 3000, Height: 500}, Size{})
	require.Equal(t, ModePro, res.Mode)
	require.Equal(t, 1440.0, res.Adjusted.Width)
	// 1440 / 6 = 240 -> next multiple of 32
	require.Equal(t, 256.0, res.Adjusted.Height)
	require.Equal(t, "PRO - 3000x500 - 1440x256", res.Label)
	require.Equal(t, "45:8", res.Fraction)
	requireCentered(t, res)
}

func TestAdjust_ClampToRatioScalesTallDown(t *testing.T) {
	res := NewAdjuster(DefaultSettings()).Adjust(Rect{Width: 400, Height: 2000}, Size{})
	require.Equal(t, ModePro, res.Mode)
	require.Equal(t, 1440.0, res.Adjusted.Height)
	// 1440 * 0.2 = 288, already a multiple of 32
	require.Equal(t, 288.0, res.Adjusted.Width)
	requireCentered(t, res)
}

func TestAdjust_SnapToBoundWide(t *testing.T) {
	s := DefaultSettings()
	s.Policy = PolicySnapToBound
	res := NewAdjuster(s).Adjust(Rect{X: 0, Y: 0, Width: 3000, Height: 500}, Size{})
	require.Equal(t, ModeUltra, res.Mode)
	require.Equal(t, 3000.0, res.Adjusted.Width)
	require.Equal(t, 1286.0, res.Adjusted.Height)
	require.Equal(t, "Ultra - 3000x500 - 6:1 -> 1500:643", res.Label)
	requireCentered(t, res)
}

func TestAdjust_SnapToBoundTall(t *testing.T) {
	s := DefaultSettings()
	s.Policy = PolicySnapToBound
	res := NewAdjuster(s).Adjust(Rect{X: 50, Y: 50, Width: 200, Height: 2100}, Size{})
	require.Equal(t, ModeUltra, res.Mode)
	require.Equal(t, 900.0, res.Adjusted.Width)
	require.Equal(t, 2100.0, res.Adjusted.Height)
	require.Equal(t, "Ultra - 200x2100 - 2:21 -> 3:7", res.Label)
	requireCentered(t, res)
}

func TestAdjust_SnapToBoundHitsBoundRatio(t *testing.T) {
	s := DefaultSettings()
	s.Policy = PolicySnapToBound
	a := NewAdjuster(s)
	for w := 1500; w <= 6000; w += 250 {
		for _, h := range []int{10, 100, 300, 600} {
			res := a.Adjust(Rect{Width: float64(w), Height: float64(h)}, Size{})
			got := res.Adjusted.Width / res.Adjusted.Height
			// rounding one side by at most half a pixel
			tol := s.MaxRatio * 0.5 / res.Adjusted.Height * 1.01
			require.InDelta(t, s.MaxRatio, got, tol, "%dx%d", w, h)
			requireCentered(t, res)

			res = a.Adjust(Rect{Width: float64(h), Height: float64(w)}, Size{})
			got = res.Adjusted.Width / res.Adjusted.Height
			tol = 0.5 / res.Adjusted.Height * 1.01
			require.InDelta(t, s.MinRatio, got, tol, "%dx%d", h, w)
			requireCentered(t, res)
		}
	}
}

func TestAdjust_DegenerateRectangles(t *testing.T) {
	for _, policy := range Policies() {
		s := DefaultSettings()
		s.Policy = policy
		a := NewAdjuster(s)

		res := a.Adjust(Rect{X: 40, Y: 40}, Size{})
		require.Equal(t, ModePro, res.Mode)
		require.Equal(t, 32.0, res.Adjusted.Width)
		require.Equal(t, 32.0, res.Adjusted.Height)
		requireCentered(t, res)

		res = a.Adjust(Rect{X: 0, Y: 0, Width: 5000, Height: 0}, Size{})
		require.False(t, math.IsNaN(res.Adjusted.Width))
		require.False(t, math.IsNaN(res.Adjusted.Height))
		require.Positive(t, res.Adjusted.Height)
		require.Positive(t, res.Adjusted.Width)
		requireCentered(t, res)
	}
}

func TestAdjust_HugeDimensionsStayPositive(t *testing.T) {
	for _, policy := range Policies() {
		s := DefaultSettings()
		s.Policy = policy
		a := NewAdjuster(s)
		for _, r := range []Rect{
			{Width: 1e300, Height: 10},
			{Width: 10, Height: 1e300},
			{Width: math.Inf(1), Height: math.Inf(1)},
		} {
			res := a.Adjust(r, Size{})
			require.Positive(t, res.Adjusted.Width, "%v %+v", policy, r)
			require.Positive(t, res.Adjusted.Height, "%v %+v", policy, r)
			require.LessOrEqual(t, res.Adjusted.Width, float64(MaxDimension))
			require.LessOrEqual(t, res.Adjusted.Height, float64(MaxDimension))
		}
	}
}

func TestSettings_Normalize(t *testing.T) {
	s := Settings{MaxSide: -1, Grid: 0, MinRatio: 3, MaxRatio: 0.5, Policy: Policy(42)}.Normalize()
	require.Equal(t, DefaultMaxSide, s.MaxSide)
	require.Equal(t, DefaultGrid, s.Grid)
	require.Equal(t, 0.5, s.MinRatio)
	require.Equal(t, 3.0, s.MaxRatio)
	require.Equal(t, PolicyClampToRatio, s.Policy)

	var nilAdjuster *Adjuster
	require.Equal(t, DefaultSettings(), nilAdjuster.Settings())
	res := nilAdjuster.Adjust(Rect{Width: 100, Height: 50}, Size{})
	require.Equal(t, 128.0, res.Adjusted.Width)
}

func TestAspectFraction(t *testing.T) {
	require.Equal(t, "16:9", AspectFraction(1920, 1080))
	require.Equal(t, "1:1", AspectFraction(2000, 2000))
	require.Equal(t, "7:3", AspectFraction(2100, 900))
	require.Equal(t, "1:0", AspectFraction(7, 0))
	require.Equal(t, "0:0", AspectFraction(0, 0))
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("snap-to-bound")
	require.NoError(t, err)
	require.Equal(t, PolicySnapToBound, p)

	p, err = ParsePolicy("")
	require.NoError(t, err)
	require.Equal(t, PolicyClampToRatio, p)

	_, err = ParsePolicy("stretch")
	require.Error(t, err)
}
