package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Action names accepted in the "keys" section of the config file.
const (
	actionNextPane        = "next_pane"
	actionSplitHorizontal = "split_horizontal"
	actionSplitVertical   = "split_vertical"
	actionAddPane         = "add_pane"
	actionRemovePane      = "remove_pane"
	actionJump            = "jump"
	actionTogglePanel     = "toggle_panel"
	actionToggleDebug     = "toggle_debug"
	actionQuit            = "quit"
)

type keyMap struct {
	NextPane        key.Binding
	SplitHorizontal key.Binding
	SplitVertical   key.Binding
	AddPane         key.Binding
	RemovePane      key.Binding
	Jump            key.Binding
	TogglePanel     key.Binding
	ToggleDebug     key.Binding
	Quit            key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextPane: key.NewBinding(
			key.WithKeys("ctrl+]"),
			key.WithHelp("ctrl+]", "next pane"),
		),
		SplitHorizontal: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("f2", "split x"),
		),
		SplitVertical: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("f3", "split y"),
		),
		AddPane: key.NewBinding(
			key.WithKeys("a", "1"),
			key.WithHelp("a", "add"),
		),
		RemovePane: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove"),
		),
		Jump: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "jump"),
		),
		TogglePanel: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "panel"),
		),
		ToggleDebug: key.NewBinding(
			key.WithKeys("f12"),
			key.WithHelp("f12", "debug"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k *keyMap) byAction() map[string]*key.Binding {
	return map[string]*key.Binding{
		actionNextPane:        &k.NextPane,
		actionSplitHorizontal: &k.SplitHorizontal,
		actionSplitVertical:   &k.SplitVertical,
		actionAddPane:         &k.AddPane,
		actionRemovePane:      &k.RemovePane,
		actionJump:            &k.Jump,
		actionTogglePanel:     &k.TogglePanel,
		actionToggleDebug:     &k.ToggleDebug,
		actionQuit:            &k.Quit,
	}
}

// apply replaces the keys of every overridden action. The help label shows
// the first key.
func (k *keyMap) apply(overrides map[string][]string) error {
	if err := ValidateKeyOverrides(overrides); err != nil {
		return err
	}
	bindings := k.byAction()
	for action, keys := range overrides {
		b := bindings[action]
		desc := b.Help().Desc
		b.SetKeys(keys...)
		b.SetHelp(keys[0], desc)
	}
	return nil
}

// ValidateKeyOverrides checks that every action name is known and has at
// least one key.
func ValidateKeyOverrides(overrides map[string][]string) error {
	if len(overrides) == 0 {
		return nil
	}
	known := (&keyMap{}).byAction()
	for action, keys := range overrides {
		if _, ok := known[action]; !ok {
			names := make([]string, 0, len(known))
			for name := range known {
				names = append(names, name)
			}
			sort.Strings(names)
			return fmt.Errorf("unknown action %q (valid: %s)", action, strings.Join(names, ", "))
		}
		if len(keys) == 0 {
			return fmt.Errorf("action %q has no keys", action)
		}
		for _, k := range keys {
			if strings.TrimSpace(k) == "" {
				return fmt.Errorf("action %q has an empty key", action)
			}
		}
	}
	return nil
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AddPane, k.RemovePane, k.NextPane, k.SplitHorizontal, k.SplitVertical, k.Jump, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.AddPane, k.RemovePane, k.NextPane},
		{k.SplitHorizontal, k.SplitVertical, k.Jump},
		{k.TogglePanel, k.ToggleDebug, k.Quit},
	}
}
