package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sidequest/internal/engine"
	"sidequest/internal/ui"
)

var filterCycle = []engine.Filter{
	engine.FilterAll,
	engine.FilterActive,
	engine.FilterCompleted,
	engine.FilterProjects,
}

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	status engine.StatusView
	roots  []engine.Task
	byID   map[string]engine.Task

	filter   engine.Filter
	expanded map[string]bool
	selected int

	// input is shown while adding; parentID is set when adding a subtask.
	adding   bool
	parentID string
	input    textinput.Model

	lastLog string
	loading bool
}

type loadedMsg struct {
	status engine.StatusView
	roots  []engine.Task
	all    []engine.Task
}

// actionMsg reports the outcome of a mutating command; the board reloads after it.
type actionMsg struct {
	log string
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	ti := textinput.New()
	ti.Placeholder = "Task title"
	ti.CharLimit = 200
	ti.Width = 40

	return boardModel{
		ctx:      ctx,
		svc:      svc,
		filter:   engine.FilterAll,
		expanded: map[string]bool{},
		byID:     map[string]engine.Task{},
		input:    ti,
		loading:  true,
		lastLog:  "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	filter := m.filter
	return func() tea.Msg {
		return loadedMsg{
			status: m.svc.Status(),
			roots:  m.svc.Filter(filter),
			all:    m.svc.Tasks(),
		}
	}
}

func (m boardModel) toggleCmd(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.ToggleCompletion(m.ctx, id)
		if err != nil {
			return actionMsg{err: err}
		}
		if !res.Completed {
			return actionMsg{log: "Reopened " + ui.ShortID(id) + "."}
		}
		log := fmt.Sprintf("Completed %s: +%d XP", ui.ShortID(id), res.XPAwarded)
		if res.LevelUp {
			log += fmt.Sprintf(" (level %d → %d)", res.LevelBefore, res.LevelAfter)
		}
		return actionMsg{log: log}
	}
}

func (m boardModel) promoteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.svc.PromoteToProject(m.ctx, id); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{log: "Promoted " + ui.ShortID(id) + " to project."}
	}
}

func (m boardModel) demoteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.svc.DemoteToTask(m.ctx, id); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{log: "Demoted " + ui.ShortID(id) + "."}
	}
}

func (m boardModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.Delete(m.ctx, id); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{log: "Deleted " + ui.ShortID(id) + "."}
	}
}

func (m boardModel) addCmd(parentID, title string) tea.Cmd {
	return func() tea.Msg {
		in := engine.CreateInput{Title: title}
		if parentID == "" {
			t, err := m.svc.Create(m.ctx, in)
			if err != nil {
				return actionMsg{err: err}
			}
			return actionMsg{log: fmt.Sprintf("Added %s (staked %d).", t.Title, t.StakedPoints)}
		}
		res, err := m.svc.AddSubtask(m.ctx, parentID, in)
		if err != nil {
			return actionMsg{err: err}
		}
		log := fmt.Sprintf("Added subtask %s.", res.Subtask.Title)
		if res.DecompositionBonus > 0 {
			log += fmt.Sprintf(" Decomposition bonus +%d XP.", res.DecompositionBonus)
		}
		return actionMsg{log: log}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.status = msg.status
		m.roots = msg.roots
		m.byID = make(map[string]engine.Task, len(msg.all))
		for _, t := range msg.all {
			m.byID[t.ID] = t
			if _, seen := m.expanded[t.ID]; !seen && len(t.ChildIDs) > 0 {
				m.expanded[t.ID] = true
			}
		}
		m.clampSelection()
		return m, nil
	case actionMsg:
		if msg.err != nil {
			m.lastLog = "Error: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = msg.log
		return m, m.loadCmd()
	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m boardModel) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.stopAdding()
		m.lastLog = "Add cancelled."
		return m, nil
	case "enter":
		title := strings.TrimSpace(m.input.Value())
		parentID := m.parentID
		m.stopAdding()
		if title == "" {
			m.lastLog = "Title is required."
			return m, nil
		}
		return m, m.addCmd(parentID, title)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *boardModel) startAdding(parentID string) tea.Cmd {
	m.adding = true
	m.parentID = parentID
	m.input.Reset()
	return m.input.Focus()
}

func (m *boardModel) stopAdding() {
	m.adding = false
	m.parentID = ""
	m.input.Blur()
	m.input.Reset()
}

func (m boardModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		m.loading = true
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, m.loadCmd()
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "j":
		if m.selected < len(m.taskLines())-1 {
			m.selected++
		}
		return m, nil
	case "f":
		m.filter = nextFilter(m.filter)
		m.selected = 0
		m.lastLog = "Filter: " + string(m.filter)
		return m, m.loadCmd()
	case "a":
		m.lastLog = "New task (enter to save, esc to cancel)"
		cmd := m.startAdding("")
		return m, cmd
	}

	line, ok := m.selectedLine()
	if !ok {
		return m, nil
	}
	switch msg.String() {
	case "enter":
		if line.hasChildren {
			m.expanded[line.id] = !m.expanded[line.id]
		}
		return m, nil
	case "c", " ":
		return m, m.toggleCmd(line.id)
	case "p":
		return m, m.promoteCmd(line.id)
	case "d":
		return m, m.demoteCmd(line.id)
	case "x":
		return m, m.deleteCmd(line.id)
	case "s":
		parent := line.id
		if line.depth > 0 {
			parent = m.byID[line.id].ParentID
		}
		m.lastLog = "New subtask (enter to save, esc to cancel)"
		cmd := m.startAdding(parent)
		return m, cmd
	}
	return m, nil
}

func nextFilter(f engine.Filter) engine.Filter {
	for i, v := range filterCycle {
		if v == f {
			return filterCycle[(i+1)%len(filterCycle)]
		}
	}
	return engine.FilterAll
}

type taskLine struct {
	id          string
	depth       int
	hasChildren bool
	expanded    bool
}

func (m boardModel) taskLines() []taskLine {
	var out []taskLine
	for _, root := range m.roots {
		t, ok := m.byID[root.ID]
		if !ok {
			t = root
		}
		out = append(out, taskLine{
			id:          t.ID,
			hasChildren: len(t.ChildIDs) > 0,
			expanded:    m.expanded[t.ID],
		})
		if !m.expanded[t.ID] {
			continue
		}
		for _, childID := range t.ChildIDs {
			if _, ok := m.byID[childID]; ok {
				out = append(out, taskLine{id: childID, depth: 1})
			}
		}
	}
	return out
}

func (m boardModel) selectedLine() (taskLine, bool) {
	lines := m.taskLines()
	if m.selected < 0 || m.selected >= len(lines) {
		return taskLine{}, false
	}
	return lines[m.selected], true
}

func (m *boardModel) clampSelection() {
	n := len(m.taskLines())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m boardModel) View() string {
	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	leftW := 30
	if m.width > 0 {
		leftW = min(leftW, m.width/2)
		leftW = max(leftW, 18)
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	rows := max(len(linesLeft), len(linesRight))

	var body strings.Builder
	for i := 0; i < rows; i++ {
		l, r := "", ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.loading {
		return "Sidequest: loading…"
	}
	s := m.status
	floor := engine.XPRequiredForLevel(s.Level)
	return fmt.Sprintf("%s | Level %d | XP %d %s",
		ui.Title.Render("Sidequest"), s.Level, s.XPTotal,
		ui.Gold.Render(ui.Bar(s.XPTotal-floor, s.NextLevelXP-floor, 30)))
}

func (m boardModel) renderSidebar() string {
	s := m.status
	lines := []string{
		ui.H2.Render("Status"),
		ui.Meter("HP", ui.HPStyle(s.CurrentHP, s.MaxHP), s.CurrentHP, s.MaxHP, 10),
		ui.Meter("MP", ui.Mana, s.CurrentMP, s.MaxMP, 10),
		renderSkill("INT", s.LevelINT, s.IntProgress),
		renderSkill("SPD", s.LevelSpeed, s.SpeedProgress),
		"",
		ui.H2.Render("Keys"),
		"- ↑/↓ or j/k: move",
		"- enter: expand/collapse",
		"- c/space: toggle done",
		"- a: add  s: add subtask",
		"- p/d: promote/demote",
		"- x: delete",
		"- f: filter  r: refresh",
		"- q: quit",
	}
	return strings.Join(lines, "\n")
}

func renderSkill(label string, level int, p engine.SkillProgress) string {
	return fmt.Sprintf("%s L%d %s", ui.Key.Render(label), level, ui.Bar(p.Current, p.Needed, 10))
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	out := []string{ui.H2.Render(fmt.Sprintf("Tasks (%s)", m.filter))}

	lines := m.taskLines()
	if len(lines) == 0 {
		out = append(out, ui.Muted.Render("(empty)"))
	}
	for i, ql := range lines {
		t := m.byID[ql.id]
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		fold := "  "
		if ql.hasChildren {
			fold = "▸ "
			if ql.expanded {
				fold = "▾ "
			}
		}
		row := fmt.Sprintf("%s%s%s%s %s %s %s",
			cursor, strings.Repeat("  ", ql.depth), fold,
			ui.CheckBox(t.Completed), ui.KindIcon(string(t.Kind)), t.Title,
			ui.Muted.Render(fmt.Sprintf("(%d pts)", t.StakedPoints)))
		if ql.hasChildren {
			done, total := m.childProgress(t)
			row += " " + ui.Muted.Render(fmt.Sprintf("%d/%d", done, total))
		}
		out = append(out, row)
	}

	if m.adding {
		label := "Add task: "
		if m.parentID != "" {
			label = "Add subtask to " + m.byID[m.parentID].Title + ": "
		}
		out = append(out, "", ui.Key.Render(label)+m.input.View())
	}
	return strings.Join(out, "\n")
}

func (m boardModel) childProgress(t engine.Task) (done, total int) {
	for _, id := range t.ChildIDs {
		c, ok := m.byID[id]
		if !ok {
			continue
		}
		total++
		if c.Completed {
			done++
		}
	}
	return done, total
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if width <= 0 || w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
