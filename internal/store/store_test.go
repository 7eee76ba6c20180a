package store

import "testing"

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBrightnessRoundTrip(t *testing.T) {
	s := openMemory(t)

	if err := s.SetBrightness(69); err != nil {
		t.Fatal(err)
	}
	b, ok, err := s.GetBrightness()
	if err != nil || !ok || b != 69 {
		t.Fatalf("got (%d,%v,%v), want (69,true,nil)", b, ok, err)
	}

	if err := s.SetBrightness(20); err != nil {
		t.Fatal(err)
	}
	b, ok, err = s.GetBrightness()
	if err != nil || !ok || b != 20 {
		t.Fatalf("got (%d,%v,%v), want (20,true,nil)", b, ok, err)
	}
}

func TestGetBrightnessUnsetReturnsNotOK(t *testing.T) {
	s := openMemory(t)
	_, ok, err := s.GetBrightness()
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected ok=false when brightness was never set")
	}
}

func TestAllowsSettingInputMappings(t *testing.T) {
	s := openMemory(t)

	// Button4Pressed -> [Option], Button1Pressed -> [Backspace]
	const button4Pressed, button1Pressed = 4, 1
	if err := s.SetInputBinding(button4Pressed, "[Option]"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetInputBinding(button1Pressed, "[Backspace]"); err != nil {
		t.Fatal(err)
	}

	if err := s.SetInputBinding(button4Pressed, "[Add,Backspace]"); err != nil {
		t.Fatal(err)
	}

	all, err := s.GetAllInputBindings()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d rows, want 2: %v", len(all), all)
	}

	byID := make(map[uint16]string, len(all))
	for _, b := range all {
		byID[b.ButtonID] = b.Actions
	}
	if byID[button1Pressed] != "[Backspace]" {
		t.Fatalf("button1 = %q, want [Backspace]", byID[button1Pressed])
	}
	if byID[button4Pressed] != "[Add,Backspace]" {
		t.Fatalf("button4 = %q, want [Add,Backspace]", byID[button4Pressed])
	}
}

func TestAllowsSettingDisplayZoneImages(t *testing.T) {
	s := openMemory(t)

	const touchscreen3, button3 uint16 = 3, 13 // wire ids, per codec.DisplayZone.WireID
	if err := s.SetImageBinding(touchscreen3, "foo.jpg"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetImageBinding(button3, "fat.jpg"); err != nil {
		t.Fatal(err)
	}

	if err := s.SetImageBinding(touchscreen3, "231.jpg"); err != nil {
		t.Fatal(err)
	}

	all, err := s.GetAllImageBindings()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d rows, want 2: %v", len(all), all)
	}
	byID := make(map[uint16]string, len(all))
	for _, b := range all {
		byID[b.DisplayZoneID] = b.ImagePath
	}
	if byID[touchscreen3] != "231.jpg" {
		t.Fatalf("touchscreen3 = %q, want 231.jpg", byID[touchscreen3])
	}

	if err := s.ClearImageBinding(touchscreen3); err != nil {
		t.Fatal(err)
	}
	all, err = s.GetAllImageBindings()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0].DisplayZoneID != button3 {
		t.Fatalf("got %v, want one row for button3", all)
	}
}

func TestClearAllImageBindings(t *testing.T) {
	s := openMemory(t)
	if err := s.SetImageBinding(1, "a.jpg"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetImageBinding(2, "b.jpg"); err != nil {
		t.Fatal(err)
	}
	if err := s.ClearAllImageBindings(); err != nil {
		t.Fatal(err)
	}
	all, err := s.GetAllImageBindings()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Fatalf("got %d rows, want 0", len(all))
	}
}
