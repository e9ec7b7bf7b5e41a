package export

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Scene column names added for scene views
const (
	ColSceneName       = "scene_name"
	ColSceneInstance   = "scene_instance"
	ColSceneStartTime  = "scene_start_game_time_secs"
	ColSceneEndTime    = "scene_end_game_time_secs"
	ColSceneStartEpoch = "scene_start_millis_since_epoch"
	ColSceneEndEpoch   = "scene_end_millis_since_epoch"
	ColSceneDuration   = "scene_duration"
)

// MetadataColumnPrefix prefixes session metadata columns
const MetadataColumnPrefix = "session_"

// Table is a rectangular view of a source. Columns are the union of all
// row keys in first-seen order; missing cells are nil.
type Table struct {
	Columns []string
	Rows    [][]any
}

// BuildTable lays out src according to opts. With Flatten, a nested
// object under key k becomes columns k_<subkey>; nested objects decode
// into plain maps, so their subkeys are laid out in sorted order rather
// than file order.
func BuildTable(src Source, opts Options) *Table {
	var (
		columns []string
		index   = make(map[string]int)
		rows    []map[string]any
	)
	addColumn := func(name string) {
		if _, ok := index[name]; !ok {
			index[name] = len(columns)
			columns = append(columns, name)
		}
	}

	for _, r := range src.Records() {
		row := make(map[string]any, r.Len())
		r.Each(func(key string, value any) bool {
			nested, isMap := value.(map[string]any)
			if !opts.Flatten || !isMap {
				addColumn(key)
				row[key] = value
				return true
			}
			for _, nk := range sortedKeys(nested) {
				col := key + "_" + nk
				addColumn(col)
				row[col] = nested[nk]
			}
			return true
		})
		rows = append(rows, row)
	}

	var extra []struct {
		name  string
		value any
	}
	if opts.IncludeMetadata {
		md := src.Metadata()
		for _, k := range sortedKeys(md) {
			extra = append(extra, struct {
				name  string
				value any
			}{MetadataColumnPrefix + k, md[k]})
		}
	}
	if scene, ok := src.(sceneSource); ok && opts.IncludeSceneInfo {
		info := scene.Info()
		for _, c := range []struct {
			name  string
			value any
		}{
			{ColSceneName, info.Name},
			{ColSceneInstance, info.Instance},
			{ColSceneStartTime, info.StartGameTime},
			{ColSceneEndTime, info.EndGameTime},
			{ColSceneStartEpoch, info.StartEpoch},
			{ColSceneEndEpoch, info.EndEpoch},
			{ColSceneDuration, info.Duration()},
		} {
			extra = append(extra, c)
		}
	}
	for _, e := range extra {
		addColumn(e.name)
		for _, row := range rows {
			row[e.name] = e.value
		}
	}

	t := &Table{Columns: columns, Rows: make([][]any, len(rows))}
	for i, row := range rows {
		cells := make([]any, len(columns))
		for col, v := range row {
			cells[index[col]] = v
		}
		t.Rows[i] = cells
	}
	return t
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FormatCell renders a cell as text: strings verbatim, numbers in their
// shortest form, nil as empty, and nested values as JSON
func FormatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}
