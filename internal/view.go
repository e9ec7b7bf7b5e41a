package internal

import "fmt"

// SceneView is a session scoped to one scene instance. Filters delegate to
// the wrapped session and keep the scene descriptor.
type SceneView struct {
	session *Session
	info    SceneInfo
}

func newSceneView(session *Session, info SceneInfo) *SceneView {
	return &SceneView{session: session, info: info}
}

// Info returns the scene descriptor
func (v *SceneView) Info() SceneInfo {
	return v.info
}

// Session returns the scene-scoped session
func (v *SceneView) Session() *Session {
	return v.session
}

// Records returns deep copies of the scene's records
func (v *SceneView) Records() []*Record {
	return v.session.Records()
}

// Metadata returns a copy of the session metadata
func (v *SceneView) Metadata() map[string]any {
	return v.session.Metadata()
}

// Len returns the number of records in the scene
func (v *SceneView) Len() int {
	return v.session.Len()
}

// Filter keeps the scene records pred accepts
func (v *SceneView) Filter(pred Predicate) *SceneView {
	return newSceneView(v.session.Filter(pred), v.info)
}

// FilterType keeps scene records whose type tag is one of types
func (v *SceneView) FilterType(types ...string) *SceneView {
	return newSceneView(v.session.FilterType(types...), v.info)
}

// FilterTimeRange keeps scene records with game-time in [start, end].
// Times are absolute, not relative to the scene start.
func (v *SceneView) FilterTimeRange(start, end float64) *SceneView {
	return newSceneView(v.session.FilterTimeRange(start, end), v.info)
}

// Stats returns session stats labelled with the scene, without the
// session-level scene list
func (v *SceneView) Stats() Stats {
	st := v.session.Stats()
	st.Scene = sceneStats(v.info)
	st.Scenes = nil
	return st
}

func (v *SceneView) String() string {
	return fmt.Sprintf("SceneView(%s, instance=%d, %d records)", v.info.Name, v.info.Instance, v.session.Len())
}
