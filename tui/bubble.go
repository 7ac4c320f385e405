package tui

import (
	"time"

	"github.com/playcore/playcore/event"
	"github.com/playcore/playcore/player"
	"github.com/playcore/playcore/style"
	"github.com/playcore/playcore/util"
	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

const refreshInterval = time.Second

type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	busy          bool

	keymap *statefulKeymap

	// components
	playlistC list.Model
	progressC progress.Model
	helpC     help.Model

	player *player.Player
	events <-chan event.Code

	status  player.Status
	volume  int
	muted   bool
	elapsed time.Duration
	percent int

	info      []string
	lastError error

	width, height int
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState records the current state in the history unless it is the error screen.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if !lo.Contains([]state{errorState}, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
	}
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	styledWidth := width - x
	styledHeight := height - y

	listWidth := width - xx
	// room for the status lines under the list
	listHeight := util.Max(height-yy-statusHeight, 0)

	b.playlistC.SetSize(listWidth, listHeight)
	b.playlistC.Help.Width = listWidth

	b.progressC.Width = listWidth

	b.width = styledWidth
	b.height = styledHeight
	b.helpC.Width = listWidth
}

func newBubble(options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,
		player:        options.Player,
		events:        options.Events,
	}

	makeList := func(title string) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.SetSpacing(0)
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(style.AccentColor).Padding(0, 1)
		listC.Styles.NoItems = paddingStyle
		listC.SetFilteringEnabled(false)
		listC.SetShowStatusBar(false)
		listC.StatusMessageLifetime = 5 * time.Second
		return listC
	}

	bubble.helpC = help.New()
	bubble.progressC = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	title := options.Title
	if title == "" {
		title = "Playlist"
	}
	bubble.playlistC = makeList(title)

	return &bubble
}
