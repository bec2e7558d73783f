package web

import (
	"github.com/verte-zerg/typesprint/internal/diff"
	"github.com/verte-zerg/typesprint/internal/stats"
)

// queuePresenter buffers presenter calls as outbound messages until the
// connection loop drains them.
type queuePresenter struct {
	out []Message
}

func (p *queuePresenter) push(typ string, data any) {
	p.out = append(p.out, Message{Type: typ, Data: data})
}

func (p *queuePresenter) drain() []Message {
	out := p.out
	p.out = nil
	return out
}

func (p *queuePresenter) Render(sentence string) {
	p.push(TypeRender, RenderData{Sentence: sentence})
}

func (p *queuePresenter) UpdateCharacterStatus(index int, status diff.Status) {
	p.push(TypeStatus, StatusData{Index: index, Status: status.String()})
}

func (p *queuePresenter) SetInputEnabled(enabled bool) {
	p.push(TypeInput, InputStateData{Enabled: enabled})
}

func (p *queuePresenter) ShowResults(res stats.Result) {
	p.push(TypeResults, ResultsData{
		WPM:       res.WPM,
		Accuracy:  res.Accuracy,
		ElapsedMs: res.Elapsed.Milliseconds(),
	})
}

func (p *queuePresenter) HideResults() {
	p.push(TypeHideResults, nil)
}

func (p *queuePresenter) SetButtonLabel(label string) {
	p.push(TypeLabel, LabelData{Text: label})
}

func (p *queuePresenter) fail(msg string) {
	p.push(TypeError, ErrorData{Message: msg})
}
