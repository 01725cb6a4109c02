package platform

// Toolbar is the movable toolbar surface the controller draws on. All
// coordinates are root-window pixels.
type Toolbar interface {
	Geometry() (x, y, width, height int)
	MoveTo(x, y int)
	Resize(width, height int)
	Raise()
	Show()
	Hide()
	Visible() bool

	// GrabPointer holds an active pointer grab for the duration of a drag so
	// release events arrive even when the pointer leaves the window.
	GrabPointer() error
	UngrabPointer()

	Clear()
	FillRect(x, y, width, height int, color uint32)
	DrawText(x, y int, text string, fg, bg uint32)

	Destroy()
}

// Backend abstracts window-system operations across platforms.
type Backend interface {
	CreateToolbar(x, y, width, height int, opacity float64) (Toolbar, error)
	EventLoop()
	Quit()
	Disconnect()
}
