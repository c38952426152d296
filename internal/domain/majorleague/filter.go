package majorleague

import (
	"os"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
)

// League is one entry from the major-leagues reference file.
type League struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// Filter is the read-only allow-list of leagues worth ingesting
// predictions for. Built once at startup.
type Filter struct {
	leagues []League
	ids     map[int64]struct{}
}

func NewFilter(leagues []League) *Filter {
	ids := make(map[int64]struct{}, len(leagues))
	for _, l := range leagues {
		ids[l.ID] = struct{}{}
	}
	return &Filter{leagues: leagues, ids: ids}
}

// LoadFromFile reads the JSON reference file, a flat array of leagues.
func LoadFromFile(path string) (*Filter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, crerr.Wrap(err, "read major leagues file")
	}

	var leagues []League
	if err := sonic.Unmarshal(data, &leagues); err != nil {
		return nil, crerr.Wrap(err, "parse major leagues file")
	}
	if len(leagues) == 0 {
		return nil, crerr.Newf("major leagues file %s has no entries", path)
	}

	return NewFilter(leagues), nil
}

func (f *Filter) Contains(leagueID int64) bool {
	_, ok := f.ids[leagueID]
	return ok
}

// IDs returns the league ids in file order.
func (f *Filter) IDs() []int64 {
	out := make([]int64, 0, len(f.leagues))
	for _, l := range f.leagues {
		out = append(out, l.ID)
	}
	return out
}

func (f *Filter) Leagues() []League {
	return f.leagues
}
