package bloc

import "fmt"

// Info is the structured result of processing a locator.
// A blank string field means unresolved or not applicable.
type Info struct {
	Host    string  // normalized endpoint host
	Region  string  // resolved region
	Bucket  string  // resolved bucket name
	RootKey string  // object-key prefix, bucket segment removed
	Profile string  // credential profile name
	Service Service // service class, set during rebuild
}

// Clone returns a deep copy of the record.
func (i *Info) Clone() *Info {
	if i == nil {
		return nil
	}
	dup := *i
	return &dup
}

// Clear resets every field to its zero value. Safe to call repeatedly.
func (i *Info) Clear() {
	if i == nil {
		return
	}
	*i = Info{}
}

// String renders the record as a single diagnostic line.
func (i *Info) String() string {
	return fmt.Sprintf("host=%s region=%s bucket=%s rootkey=%s profile=%s",
		orNull(i.Host),
		orNull(i.Region),
		orNull(i.Bucket),
		orNull(i.RootKey),
		orNull(i.Profile),
	)
}

func orNull(s string) string {
	if s == "" {
		return "null"
	}
	return s
}
