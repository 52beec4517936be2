package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// AssertGolden compares the report's canonical JSON against
// testdata/golden/{name}.golden.
//
// Reports embed the run id, so callers should run the harness with a
// deterministic RunIDGenerator. To regenerate golden files, run:
//
//	go test ./internal/harness -update
func AssertGolden(t *testing.T, name string, report *Report) error {
	t.Helper()

	reportJSON, err := report.CanonicalJSON()
	if err != nil {
		return err
	}

	newGoldie(t).Assert(t, name, reportJSON)
	return nil
}

// AssertTranscriptGolden compares a console transcript against
// testdata/golden/{name}.golden.
func AssertTranscriptGolden(t *testing.T, name string, transcript []byte) {
	t.Helper()
	newGoldie(t).Assert(t, name, transcript)
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}
