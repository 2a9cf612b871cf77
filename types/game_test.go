package types

import "testing"

func TestReleaseDateDisplay(t *testing.T) {
	tests := []struct {
		name string
		date string
		want string
	}{
		{name: "date only", date: "2017-03-03", want: "Mar-03-2017"},
		{name: "rfc3339", date: "2017-03-03T00:00:00Z", want: "Mar-03-2017"},
		{name: "unparseable passes through", date: "sometime in 2017", want: "sometime in 2017"},
		{name: "empty", date: "", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			game := Game{ReleaseDate: tc.date}
			if got := game.ReleaseDateDisplay(); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
