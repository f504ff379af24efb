package bstr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gowio/wio/bstr"
	"github.com/gowio/wio/vsb"
)

var roundTripCases = map[string]struct {
	Text  string
	Units int
}{
	"ASCII":     {Text: "hello", Units: 5},
	"Empty":     {Text: "", Units: 0},
	"BMP":       {Text: "héllo", Units: 5},
	"Surrogate": {Text: "a\U0001F600", Units: 3},
}

func TestRoundTrip(t *testing.T) {
	for testName, testCase := range roundTripCases {
		t.Run(testName, func(t *testing.T) {
			s := bstr.FromString(testCase.Text)
			defer s.Free()

			require.Equal(t, testCase.Units, s.Len())
			require.Equal(t, 2*testCase.Units, s.ByteLen())
			require.Equal(t, testCase.Text, s.String())
		})
	}
}

func TestFromWide(t *testing.T) {
	s := bstr.FromWide([]uint16{'w', 'i', 'o'})
	defer s.Free()

	require.Equal(t, []uint16{'w', 'i', 'o'}, s.Wide())
	require.Equal(t, "wio", s.String())
}

func TestEmbeddedNul(t *testing.T) {
	// The prefix, not the terminator, decides the length.
	s := bstr.FromWide([]uint16{'a', 0, 'b'})
	defer s.Free()

	require.Equal(t, 3, s.Len())
	require.Equal(t, []uint16{'a', 0, 'b'}, s.Wide())
}

func TestZeroValue(t *testing.T) {
	var s bstr.String

	require.Zero(t, s.Len())
	require.Nil(t, s.Wide())
	require.Equal(t, "", s.String())
	s.Free()
}

func TestFreeReleasesAllocation(t *testing.T) {
	allocator := vsb.NewHeapAllocator(vsb.AllocatorOptions{})

	s := bstr.FromWideIn(allocator, []uint16{'x', 'y'})
	require.Equal(t, 1, allocator.Stats().AllocationCount)

	s.Free()
	require.Zero(t, allocator.Stats().AllocationCount)

	// Idempotent.
	s.Free()
}
