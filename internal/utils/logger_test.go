package utils

import "testing"

func TestInitLoggerSetsGlobal(t *testing.T) {
	InitLogger()
	if Log == nil {
		t.Fatal("Log should be set after InitLogger")
	}
	Sync()

	TestInitLogger()
	if Log == nil {
		t.Fatal("Log should be set after TestInitLogger")
	}
	Log.Info("nop logger accepts writes")
}

func TestField(t *testing.T) {
	f := Field("key", "value")
	if f.Key != "key" {
		t.Errorf("Expected key, got %s", f.Key)
	}
}
