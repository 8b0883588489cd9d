package hyprland

import "codeberg.org/miketth/layerboard/pkg/layerboard"

type workspaceRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type client struct {
	Address   string       `json:"address"`
	Mapped    bool         `json:"mapped"`
	Class     string       `json:"class"`
	Title     string       `json:"title"`
	Monitor   int          `json:"monitor"`
	Workspace workspaceRef `json:"workspace"`
}

type monitor struct {
	ID              int          `json:"id"`
	Name            string       `json:"name"`
	Focused         bool         `json:"focused"`
	ActiveWorkspace workspaceRef `json:"activeWorkspace"`
}

func (c client) ToWindow() layerboard.Window {
	return layerboard.Window{
		Address:   c.Address,
		Class:     c.Class,
		Monitor:   c.Monitor,
		Workspace: c.Workspace.ID,
	}
}

func (m monitor) ToMonitor() layerboard.Monitor {
	return layerboard.Monitor{
		ID:              m.ID,
		Name:            m.Name,
		Focused:         m.Focused,
		ActiveWorkspace: m.ActiveWorkspace.ID,
	}
}
