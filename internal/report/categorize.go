// Package report renders the tracker's screens as plain text.
package report

import (
	"sort"

	"github.com/bryan-cox/pointledger/internal/model"
)

// IsClosed reports whether an application has reached a final stage.
func IsClosed(p model.Progress) bool {
	return p == model.ProgressOffer || p == model.ProgressRejected
}

// Pipeline groups applications by stage.
type Pipeline struct {
	Open   map[model.Progress][]model.Application
	Closed map[model.Progress][]model.Application
}

// CategorizeApplications groups applications into open and closed stages,
// each group ordered oldest to newest by submission date.
func CategorizeApplications(apps []model.Application) Pipeline {
	p := Pipeline{
		Open:   make(map[model.Progress][]model.Application),
		Closed: make(map[model.Progress][]model.Application),
	}
	for _, app := range apps {
		if IsClosed(app.Progress) {
			p.Closed[app.Progress] = append(p.Closed[app.Progress], app)
		} else {
			p.Open[app.Progress] = append(p.Open[app.Progress], app)
		}
	}
	for _, group := range []map[model.Progress][]model.Application{p.Open, p.Closed} {
		for _, list := range group {
			sort.SliceStable(list, func(i, j int) bool { return list[i].Date < list[j].Date })
		}
	}
	return p
}
