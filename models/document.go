package models

// Well-known keys inside the shared Document.
const (
	// VersionKey is the server-stamped monotonic write counter.
	VersionKey = "_version"

	// SelectedUserKey and ThemeKey are per-device settings. They live in the
	// local state file only and are stripped from every push so one device's
	// choice never reaches another device.
	SelectedUserKey = "selectedUser"
	ThemeKey        = "theme"
)

// deviceKeys lists every per-device field excluded from synchronization.
var deviceKeys = []string{SelectedUserKey, ThemeKey}

// Document is the full shared application state: rooms, tasks, users, the
// date → completion mapping and settings. The sync layer treats it as an
// opaque JSON object and never interprets it beyond the well-known keys
// above; schema evolution is the dashboard's concern.
type Document map[string]any

// DeviceFields holds the local-only keys layered outside the shared Document.
type DeviceFields map[string]any

// Version returns the server-stamped counter, or 0 if the Document has never
// been written. Handles both int64 (set in-process) and float64 (decoded from
// JSON) representations.
func (d Document) Version() int64 {
	switch v := d[VersionKey].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

// Clone returns a deep copy of the Document. Mutating the copy never affects
// the original, including nested objects and arrays.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return Document(cloneMap(d))
}

// SplitDeviceFields returns a copy of the Document with every per-device key
// removed, plus the removed keys as a separate DeviceFields value. The
// original Document is left untouched.
func (d Document) SplitDeviceFields() (Document, DeviceFields) {
	shared := d.Clone()
	device := DeviceFields{}
	for _, key := range deviceKeys {
		if v, ok := shared[key]; ok {
			device[key] = v
			delete(shared, key)
		}
	}
	return shared, device
}

// MergeDeviceFields returns a copy of the Document with the given per-device
// fields layered back on top. Keys absent from device are left as-is.
func (d Document) MergeDeviceFields(device DeviceFields) Document {
	merged := d.Clone()
	if merged == nil {
		merged = Document{}
	}
	for key, v := range device {
		merged[key] = cloneValue(v)
	}
	return merged
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case Document:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		// Scalars (string, bool, numbers, nil) are immutable.
		return val
	}
}
