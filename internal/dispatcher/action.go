package dispatcher

// Action names delivered to plugins.
const (
	ActionBeforeUpdate = "beforeUpdate"
	ActionAfterUpdate  = "afterUpdate"
	ActionClick        = "click"
	ActionKeyDown      = "keydown"
	ActionKeyUp        = "keyup"
	ActionFocus        = "focus"
	ActionBlur         = "blur"
	ActionPaste        = "paste"
	ActionCut          = "cut"
	ActionScroll       = "scroll"
	ActionResize       = "resize"
	ActionHighlight    = "highlight"
	ActionRefresh      = "refresh"
)

// Names lists every action name in a stable order.
var Names = []string{
	ActionBeforeUpdate,
	ActionAfterUpdate,
	ActionClick,
	ActionKeyDown,
	ActionKeyUp,
	ActionFocus,
	ActionBlur,
	ActionPaste,
	ActionCut,
	ActionScroll,
	ActionResize,
	ActionHighlight,
	ActionRefresh,
}

// passive actions may run while the editor is read-only.
var passive = map[string]bool{
	ActionHighlight: true,
	ActionScroll:    true,
	ActionResize:    true,
	ActionRefresh:   true,
}

// Passive reports whether name may be dispatched in read-only mode.
func Passive(name string) bool { return passive[name] }

// Action is the payload handed to the system handler and every plugin.
type Action struct {
	// Name is one of the Action* constants.
	Name string
	// Code is the editor's full text at dispatch time.
	Code string
	// Event is the host event that triggered the action, if any.
	Event any
}
