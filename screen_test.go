package bento

import "testing"

func TestScreensShowHide(t *testing.T) {
	m := NewObjectManager(ManagerConfig{})
	s := NewScreens(m)
	NewEntity(EntityConfig{Name: "hud", Global: true, AddNow: m})

	var got []string
	s.Register("title", ScreenFuncs{
		Show: func(data any) {
			got = append(got, "show title")
			NewEntity(EntityConfig{Name: "logo", AddNow: m})
		},
		Hide: func(any) { got = append(got, "hide title") },
	})
	s.Register("level", ScreenFuncs{
		Show: func(data any) {
			got = append(got, "show level "+data.(string))
			NewEntity(EntityConfig{Name: "player", AddNow: m})
		},
	})

	s.Show("title", nil)
	assertNames(t, "title", m.GetObjects(), "hud", "logo")

	s.Show("level", "1")
	if s.Current() != "level" {
		t.Errorf("Current = %q", s.Current())
	}
	assertNames(t, "level", m.GetObjects(), "hud", "player")

	s.Reload()
	assertNames(t, "reloaded", m.GetObjects(), "hud", "player")
	assertCalls(t, "hooks", got, "show title", "hide title", "show level 1", "show level 1")

	s.Hide(nil)
	if s.Current() != "" {
		t.Errorf("Current after Hide = %q", s.Current())
	}
	assertNames(t, "hidden", m.GetObjects(), "hud")
}

func TestScreensMisuse(t *testing.T) {
	logs := observeLogs(t)
	s := NewScreens(NewObjectManager(ManagerConfig{}))
	s.Register("nil", nil)
	s.Show("nil", nil)
	s.Show("ghost", nil)
	if logs.Len() != 3 {
		t.Errorf("warnings = %d, want 3", logs.Len())
	}
	if s.Current() != "" {
		t.Errorf("Current = %q", s.Current())
	}
}

func TestScreensReloadBeforeShow(t *testing.T) {
	s := NewScreens(NewObjectManager(ManagerConfig{}))
	defer func() {
		if recover() == nil {
			t.Error("Reload before Show did not panic")
		}
	}()
	s.Reload()
}
