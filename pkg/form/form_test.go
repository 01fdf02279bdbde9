package form_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/form"
)

func sequentialIDs() func(string) string {
	n := 0
	return func(handle string) string {
		n++
		return fmt.Sprintf("%sid%d", handle, n)
	}
}

func newForm(opts ...form.Option) *form.Form {
	return form.New(append([]form.Option{form.WithIDGenerator(sequentialIDs())}, opts...)...)
}

type mapTranslator map[string]string

func (m mapTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if v, ok := m[key]; ok {
		return v, nil
	}
	return key, fmt.Errorf("missing %q", key)
}

func TestRegister_KeepsFirstPositionOnOverwrite(t *testing.T) {
	f := newForm()
	f.Text("a", "A")
	f.Text("b", "B")
	f.Email("a", "A again")

	if diff := cmp.Diff([]string{"a", "b"}, f.Names()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	def, ok := f.Field("a")
	if !ok || def.Type != form.TypeEmail || def.Label != "A again" {
		t.Fatalf("expected overwritten definition, got %+v", def)
	}
}

func TestRegister_CopiesAttrsAndDropsName(t *testing.T) {
	attrs := map[string]any{"name": "evil", "step": 2}
	f := newForm()
	f.Register("qty", form.Number("ignored", "Qty", form.WithAttrs(attrs)))
	attrs["step"] = 5

	def, _ := f.Field("qty")
	if def.Name != "qty" {
		t.Fatalf("expected registry name to win, got %q", def.Name)
	}
	if _, ok := def.Attr("name"); ok {
		t.Fatalf("name attr should be dropped")
	}
	if v, _ := def.Attr("step"); v != 2 {
		t.Fatalf("stored attrs must not alias caller map, got %v", v)
	}
}

func TestIsMultipart_Monotonic(t *testing.T) {
	f := newForm()
	f.Text("a", "A")
	if f.IsMultipart() {
		t.Fatalf("text-only form must not be multipart")
	}
	f.File("doc", "Doc")
	f.Text("doc", "Doc as text")
	if !f.IsMultipart() {
		t.Fatalf("multipart must stay set once a file field was registered")
	}
}

func TestIsRequired(t *testing.T) {
	cases := []struct {
		name       string
		requireAll bool
		opt        form.FieldOption
		want       bool
	}{
		{"inherit with require all", true, nil, true},
		{"inherit without require all", false, nil, false},
		{"explicit required", false, form.WithRequired(), true},
		{"explicit optional", true, form.WithOptional(), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newForm(form.WithRequireAll(tc.requireAll))
			f.Text("x", "X", tc.opt)
			if got := f.IsRequired("x"); got != tc.want {
				t.Fatalf("IsRequired = %v, want %v", got, tc.want)
			}
		})
	}
	if newForm().IsRequired("missing") {
		t.Fatalf("unknown fields are never required")
	}
}

func TestIsDisabled(t *testing.T) {
	cases := []struct {
		name       string
		disableAll bool
		opt        form.FieldOption
		want       bool
	}{
		{"inherit with disable all", true, nil, true},
		{"inherit without disable all", false, nil, false},
		{"attr wins over disable all", true, form.WithAttr("disabled", false), false},
		{"attr disables", false, form.WithAttr("disabled", true), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newForm(form.WithDisableAll(tc.disableAll))
			f.Text("x", "X", tc.opt)
			if got := f.IsDisabled("x"); got != tc.want {
				t.Fatalf("IsDisabled = %v, want %v", got, tc.want)
			}
		})
	}
	if newForm(form.WithDisableAll(true)).IsDisabled("missing") {
		t.Fatalf("unknown fields are never disabled")
	}
}

func TestAccessors_UnknownField(t *testing.T) {
	f := newForm()
	if f.DOMID("nope") != "" || f.LabelFor("nope") != "" || f.ErrorClass("nope") != "" {
		t.Fatalf("unknown field accessors must return empty values")
	}
	if _, ok := f.Field("nope"); ok {
		t.Fatalf("unknown field reported present")
	}
}

func TestDOMID_StableAndUnique(t *testing.T) {
	f := form.New(form.WithHandle("login"))
	f.Text("a", "A")
	f.Text("b", "B")

	a1, a2, b := f.DOMID("a"), f.DOMID("a"), f.DOMID("b")
	if a1 != a2 {
		t.Fatalf("DOM id changed between calls: %q vs %q", a1, a2)
	}
	if a1 == b {
		t.Fatalf("DOM ids must be unique per field")
	}
	if len(a1) <= len("login") || a1[:5] != "login" {
		t.Fatalf("expected handle prefix, got %q", a1)
	}
}

func TestLabelFor_Override(t *testing.T) {
	f := newForm(form.WithLabels(map[string]string{"email": "E-mail address"}))
	f.Email("email", "Email")
	if got := f.LabelFor("email"); got != "E-mail address" {
		t.Fatalf("expected override, got %q", got)
	}
}

func TestValue_OldInputWins(t *testing.T) {
	old := form.OldInputFunc(func(name string) (any, bool) {
		if name == "name" {
			return "Grace", true
		}
		return nil, false
	})
	f := newForm(form.WithOldInput(old))
	f.Text("name", "Name", form.WithDefault("Ada"))
	f.Text("city", "City", form.WithDefault("Paris"))

	if got := f.Value("name"); got != "Grace" {
		t.Fatalf("expected old input, got %v", got)
	}
	if got := f.Value("city"); got != "Paris" {
		t.Fatalf("expected declared default, got %v", got)
	}
	if got := form.ResolveValue(nil, "x", 3); got != 3 {
		t.Fatalf("nil store must fall back to default, got %v", got)
	}
}

func TestTextareaDefaultsRows(t *testing.T) {
	def := form.Textarea("bio", "Bio")
	if v, _ := def.Attr("rows"); v != 4 {
		t.Fatalf("expected 4 rows, got %v", v)
	}
	def = form.Textarea("bio", "Bio", form.WithAttr("rows", 10))
	if v, _ := def.Attr("rows"); v != 10 {
		t.Fatalf("explicit rows must win, got %v", v)
	}
}

func TestSubmitNameIsFixed(t *testing.T) {
	def := form.Submit("Save")
	if def.Name != "submit" || def.Type != form.TypeSubmit {
		t.Fatalf("unexpected submit definition %+v", def)
	}
}

func TestPresets(t *testing.T) {
	dob := form.DOBSelect("dob", "Birthday")
	if dob.Type != form.TypeDateSelect {
		t.Fatalf("unexpected dob select type %q", dob.Type)
	}
	if v, _ := dob.Attr("year_start"); v != time.Now().Year() {
		t.Fatalf("unexpected year_start %v", v)
	}
	if v, _ := dob.Attr("year_end"); v != 1920 {
		t.Fatalf("unexpected year_end %v", v)
	}

	picker := form.DOBPicker("dob", "Birthday")
	if v, _ := picker.Attr("max"); v != "today" {
		t.Fatalf("unexpected max %v", v)
	}
	if v, _ := picker.Attr("num_years"); v != 999 {
		t.Fatalf("unexpected num_years %v", v)
	}

	yn := form.YesNo("agree", "Agree", form.WithDefault("1"))
	if yn.Type != form.TypeRadios || yn.Default != 1 {
		t.Fatalf("unexpected yes/no definition %+v", yn)
	}
	if got := len(yn.Options); got != 2 || yn.Options[0].Value != "1" || yn.Options[1].Value != "0" {
		t.Fatalf("unexpected yes/no options %+v", yn.Options)
	}
	if form.YesNo("agree", "Agree").Default != nil {
		t.Fatalf("nil default must stay nil")
	}

	if g := form.Gender("g", "Gender"); g.Type != form.TypeSelect {
		t.Fatalf("gender defaults to select, got %q", g.Type)
	}
	if g := form.Gender("g", "Gender", form.WithAttr("use_radio", true)); g.Type != form.TypeRadios {
		t.Fatalf("gender with use_radio must be radios, got %q", g.Type)
	}

	sal := form.Salutation("s", "Title")
	var values []string
	for _, c := range sal.Options {
		values = append(values, c.Value)
	}
	if diff := cmp.Diff([]string{"Mr", "Mrs", "Miss", "Ms"}, values); diff != "" {
		t.Fatalf("salutation mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldTypes_Valid(t *testing.T) {
	for _, typ := range form.FieldTypes() {
		if !typ.Valid() {
			t.Fatalf("%q should be valid", typ)
		}
	}
	if form.FieldType("color").Valid() {
		t.Fatalf("unknown type reported valid")
	}
}
