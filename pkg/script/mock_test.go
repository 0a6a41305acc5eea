package script_test

import (
	"github.com/stretchr/testify/mock"

	"github.com/arthur-debert/blocktext/pkg/render"
)

// mockRenderer records every contract call.
type mockRenderer struct {
	mock.Mock
}

var _ render.Renderer[*mockRenderer] = (*mockRenderer)(nil)

func (m *mockRenderer) AddEmptyLine() error { return m.Called().Error(0) }

func (m *mockRenderer) NewSubRenderer(width int) (*mockRenderer, error) {
	args := m.Called(width)
	sub, _ := args.Get(0).(*mockRenderer)
	return sub, args.Error(1)
}

func (m *mockRenderer) StartBlock() error                   { return m.Called().Error(0) }
func (m *mockRenderer) EndBlock() error                     { return m.Called().Error(0) }
func (m *mockRenderer) NewLine() error                      { return m.Called().Error(0) }
func (m *mockRenderer) NewLineHard() error                  { return m.Called().Error(0) }
func (m *mockRenderer) AddHorizontalBorder() error          { return m.Called().Error(0) }
func (m *mockRenderer) StartPre() error                     { return m.Called().Error(0) }
func (m *mockRenderer) EndPre() error                       { return m.Called().Error(0) }
func (m *mockRenderer) AddPreformattedBlock(t string) error { return m.Called(t).Error(0) }
func (m *mockRenderer) AddInlineText(t string) error        { return m.Called(t).Error(0) }
func (m *mockRenderer) Width() int                          { return m.Called().Int(0) }
func (m *mockRenderer) AddBlockLine(l string) error         { return m.Called(l).Error(0) }

func (m *mockRenderer) AppendSubrender(other *mockRenderer, prefixes []string) error {
	return m.Called(other, prefixes).Error(0)
}

func (m *mockRenderer) AppendColumnsWithBorders(cols []*mockRenderer, collapse bool) error {
	return m.Called(cols, collapse).Error(0)
}

func (m *mockRenderer) Empty() bool                       { return m.Called().Bool(0) }
func (m *mockRenderer) TextLen() int                      { return m.Called().Int(0) }
func (m *mockRenderer) StartLink(target string) error     { return m.Called(target).Error(0) }
func (m *mockRenderer) EndLink() error                    { return m.Called().Error(0) }
func (m *mockRenderer) StartEmphasis() error              { return m.Called().Error(0) }
func (m *mockRenderer) EndEmphasis() error                { return m.Called().Error(0) }
func (m *mockRenderer) StartStrong() error                { return m.Called().Error(0) }
func (m *mockRenderer) EndStrong() error                  { return m.Called().Error(0) }
func (m *mockRenderer) StartCode() error                  { return m.Called().Error(0) }
func (m *mockRenderer) EndCode() error                    { return m.Called().Error(0) }
func (m *mockRenderer) AddImage(title string) error       { return m.Called(title).Error(0) }
func (m *mockRenderer) RecordFragStart(name string) error { return m.Called(name).Error(0) }

func (m *mockRenderer) Finalize() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *mockRenderer) methods() []string {
	out := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		out[i] = c.Method
	}
	return out
}
