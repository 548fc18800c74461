// README: Wire-format tests for the stop timing states.
package plan

import (
	"encoding/json"
	"strings"
	"testing"

	"tripkit/internal/types"
)

func TestStopTimingWireStates(t *testing.T) {
	cases := []struct {
		name    string
		timings Timings
		want    string
	}{
		{"never attempted", Timings{State: TimingNone}, `"walkTime":null,"driveTime":null,"transitTime":null`},
		{"attempted and failed", FailedTimings(), `"walkTime":-1,"driveTime":-1,"transitTime":-1`},
		{"computed", ComputedTimings(12, 4, 8), `"walkTime":12,"driveTime":4,"transitTime":8`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stop := Stop{
				Name:    "경복궁",
				Point:   types.Point{Lat: 37.57, Lng: 126.97},
				Timings: tc.timings,
			}
			data, err := json.Marshal(stop)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if !strings.Contains(string(data), tc.want) {
				t.Errorf("marshal = %s, want fragment %s", data, tc.want)
			}

			var back Stop
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if back.Timings.State != tc.timings.State {
				t.Errorf("round-trip state = %v, want %v", back.Timings.State, tc.timings.State)
			}
		})
	}
}
