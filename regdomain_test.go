package wifi

import "testing"

func TestDFSRegionString(t *testing.T) {
	tests := []struct {
		r DFSRegion
		s string
	}{
		{
			r: DFSRegionUnset,
			s: "unset",
		},
		{
			r: DFSRegionFCC,
			s: "FCC",
		},
		{
			r: DFSRegionETSI,
			s: "ETSI",
		},
		{
			r: DFSRegionJP,
			s: "JP",
		},
		{
			r: DFSRegionJP + 1,
			s: "unknown(4)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.s, func(t *testing.T) {
			if want, got := tt.s, tt.r.String(); want != got {
				t.Fatalf("unexpected DFS region string:\n- want: %q\n-  got: %q", want, got)
			}
		})
	}
}
