package authz

// MenuEntry is one candidate navigation item in the static, ordered
// route-to-resource mapping. When, if set, is an attribute rule evaluated
// after the permission check; it can only narrow visibility.
type MenuEntry struct {
	Resource Resource
	Route    string
	LabelKey string
	Icon     string
	When     func(*Actor) bool
}

// MenuItem is a projected, renderable navigation item.
type MenuItem struct {
	Resource Resource
	Route    string
	LabelKey string
	Icon     string
}

// ProjectMenu derives the navigation set visible to the actor by filtering
// the snapshot's candidate list through CanView and then through each
// entry's attribute rule. Ordering is the candidate-list order; no runtime
// sort, so identical actors always see identical sequences.
func (e *Engine) ProjectMenu(actor *Actor) []MenuItem {
	snap := e.snapshot()
	items := make([]MenuItem, 0, len(snap.Menu))
	for _, entry := range snap.Menu {
		if !e.CanView(actor, entry.Resource) {
			continue
		}
		if entry.When != nil && !entry.When(actor) {
			continue
		}
		items = append(items, MenuItem{
			Resource: entry.Resource,
			Route:    entry.Route,
			LabelKey: entry.LabelKey,
			Icon:     entry.Icon,
		})
	}
	e.observeMenu(len(items))
	return items
}
