package app

import "testing"

func TestParseCommand(t *testing.T) {
	testler := []struct {
		ad       string
		args     []string
		beklenen Command
	}{
		{"bos arguman serve", nil, CommandServe},
		{"serve", []string{"serve"}, CommandServe},
		{"worker", []string{"worker"}, CommandWorker},
		{"migrate", []string{"migrate"}, CommandMigrate},
		{"healthcheck", []string{"healthcheck"}, CommandHealthcheck},
		{"bilinmeyen serve'e duser", []string{"foo"}, CommandServe},
		{"fazla arguman yok sayilir", []string{"worker", "ekstra"}, CommandWorker},
	}

	for _, tc := range testler {
		t.Run(tc.ad, func(t *testing.T) {
			if got := ParseCommand(tc.args); got != tc.beklenen {
				t.Errorf("ParseCommand(%v) = %s, beklenen %s", tc.args, got, tc.beklenen)
			}
		})
	}
}
