package menu

import "sort"

// Entry is a single keyed configuration value.
type Entry struct {
	Key   string
	Value any
}

// Data is the nested result of Node.Data. It holds either one entry, a list
// of nested data, or nothing at all (absent).
type Data struct {
	entry *Entry
	items []Data
	list  bool
}

// Value builds data holding one entry.
func Value(key string, value any) Data {
	return Data{entry: &Entry{Key: key, Value: value}}
}

// List builds data nesting the given items.
func List(items ...Data) Data {
	return Data{items: items, list: true}
}

// Absent reports whether d contributes nothing.
func (d Data) Absent() bool {
	return d.entry == nil && !d.list
}

// Entry returns the single entry held by d.
func (d Data) Entry() (Entry, bool) {
	if d.entry == nil {
		return Entry{}, false
	}
	return *d.entry, true
}

// Items returns the nested data of a list.
func (d Data) Items() []Data {
	return d.items
}

// Config is the flattened key/value mapping handed to actions. Values are
// bool, int, string, []string, or nil for an empty optional choice.
type Config map[string]any

// Keys returns the keys in sorted order.
func (c Config) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c Config) String(key string) (string, bool) {
	v, ok := c[key].(string)
	return v, ok
}

func (c Config) Bool(key string) (bool, bool) {
	v, ok := c[key].(bool)
	return v, ok
}

func (c Config) Int(key string) (int, bool) {
	v, ok := c[key].(int)
	return v, ok
}

func (c Config) Strings(key string) ([]string, bool) {
	v, ok := c[key].([]string)
	return v, ok
}

// Flatten folds nested data into a Config. Absent entries and entries
// without a key are dropped; on key collisions the last entry wins.
func Flatten(d Data) Config {
	cfg := Config{}
	flattenInto(cfg, d)
	return cfg
}

func flattenInto(cfg Config, d Data) {
	if e, ok := d.Entry(); ok {
		if e.Key != "" {
			cfg[e.Key] = e.Value
		}
		return
	}
	for _, item := range d.items {
		flattenInto(cfg, item)
	}
}

// Collect flattens the configuration of the whole tree rooted at root.
func Collect(root *Menu) Config {
	if root == nil {
		return Config{}
	}
	return Flatten(root.Data())
}
