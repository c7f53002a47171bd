package advisor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Advice is the model's typographic critique. The four known keys always
// exist after ParseAdvice; their values are kept exactly as the model sent
// them, so an unexpected shape never loses data. Use Assessment, Pairings
// and Strings for display.
type Advice struct {
	Analysis        Value
	FontPairings    []Value
	Recommendations []Value
	Issues          []Value

	// Extra holds any other top-level key of the answer.
	Extra map[string]json.RawMessage
}

// MarshalJSON writes the known keys first, then Extra in key order.
func (a Advice) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	write := func(key string, v any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(key)
		buf.Write(k)
		buf.WriteByte(':')
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	}

	analysis := a.Analysis
	if analysis.IsNull() {
		analysis = Value{raw: json.RawMessage(`{}`)}
	}
	if err := write("analysis", analysis); err != nil {
		return nil, err
	}
	if err := write("fontPairings", nonNil(a.FontPairings)); err != nil {
		return nil, err
	}
	if err := write("recommendations", nonNil(a.Recommendations)); err != nil {
		return nil, err
	}
	if err := write("issues", nonNil(a.Issues)); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(a.Extra))
	for k := range a.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := write(k, a.Extra[k]); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Assessment returns the analysis as display text. A non-object analysis is
// reported as the overall quality.
func (a *Advice) Assessment() Analysis {
	if !a.Analysis.IsObject() {
		return Analysis{OverallQuality: a.Analysis.String()}
	}
	return Analysis{
		OverallQuality: a.Analysis.Field("overallQuality").String(),
		Hierarchy:      a.Analysis.Field("hierarchy").String(),
		Readability:    a.Analysis.Field("readability").String(),
		Style:          a.Analysis.Field("style").String(),
	}
}

// Pairings returns the font pairings as display text. A pairing that is not
// an object is reported as its Primary.
func (a *Advice) Pairings() []FontPairing {
	out := make([]FontPairing, 0, len(a.FontPairings))
	for _, v := range a.FontPairings {
		if !v.IsObject() {
			out = append(out, FontPairing{Primary: v.String()})
			continue
		}
		out = append(out, FontPairing{
			Primary:   v.Field("primary").String(),
			Secondary: v.Field("secondary").String(),
			Reason:    v.Field("reason").String(),
			UseCase:   v.Field("useCase").String(),
		})
	}
	return out
}

// Analysis is the display view of the overall assessment.
type Analysis struct {
	OverallQuality string
	Hierarchy      string
	Readability    string
	Style          string
}

// IsZero reports whether the model returned no assessment at all.
func (a Analysis) IsZero() bool {
	return a == Analysis{}
}

// FontPairing is the display view of one suggested combination of fonts.
type FontPairing struct {
	Primary   string
	Secondary string
	Reason    string
	UseCase   string
}

// Value is a JSON value from the model answer, kept verbatim.
type Value struct {
	raw json.RawMessage
}

// Text returns a Value holding the JSON string s.
func Text(s string) Value {
	b, _ := json.Marshal(s)
	return Value{raw: b}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if len(v.raw) == 0 {
		return []byte("null"), nil
	}
	return v.raw, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(b []byte) error {
	v.raw = append(json.RawMessage(nil), b...)
	return nil
}

// IsNull reports whether v is missing or JSON null.
func (v Value) IsNull() bool {
	s := bytes.TrimSpace(v.raw)
	return len(s) == 0 || bytes.Equal(s, []byte("null"))
}

// IsObject reports whether v is a JSON object.
func (v Value) IsObject() bool {
	s := bytes.TrimSpace(v.raw)
	return len(s) > 0 && s[0] == '{'
}

// Field returns the value of key when v is an object, otherwise a null Value.
func (v Value) Field(key string) Value {
	if !v.IsObject() {
		return Value{}
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(v.raw, &fields); err != nil {
		return Value{}
	}
	return Value{raw: fields[key]}
}

// String renders v for humans: strings as they are, arrays joined with ", "
// and objects as "key: value" pairs in the order they were sent. Null is "".
func (v Value) String() string {
	if v.IsNull() {
		return ""
	}

	dec := json.NewDecoder(bytes.NewReader(v.raw))
	dec.UseNumber()

	var sb strings.Builder
	if err := writeText(&sb, dec); err != nil {
		return string(v.raw)
	}
	return sb.String()
}

func writeText(sb *strings.Builder, dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch t := tok.(type) {
	case json.Delim:
		object := t == '{'
		for i := 0; dec.More(); i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			if object {
				key, err := dec.Token()
				if err != nil {
					return err
				}
				fmt.Fprintf(sb, "%v: ", key)
			}
			if err := writeText(sb, dec); err != nil {
				return err
			}
		}
		_, err = dec.Token() // closing delimiter
		return err
	case string:
		sb.WriteString(t)
	case nil:
	default:
		fmt.Fprint(sb, t)
	}
	return nil
}

// Strings renders each value with String, skipping empty ones.
func Strings(values []Value) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s := v.String(); s != "" {
			out = append(out, s)
		}
	}
	return out
}
