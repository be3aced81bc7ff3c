package tape_test

import (
	"reflect"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/journalos/internal/tape"
)

func TestParseCommands(t *testing.T) {
	tests := []struct {
		input string
		want  tape.Command
	}{
		{"Enter", tape.Command{Type: tape.CommandKey, Args: []string{"enter"}}},
		{"Down 3", tape.Command{Type: tape.CommandKey, Args: []string{"down"}, Ints: []int{3}}},
		{"Down 2 @100ms", tape.Command{Type: tape.CommandKey, Args: []string{"down"}, Ints: []int{2}, Delay: 100 * time.Millisecond}},
		{"Tab@50", tape.Command{Type: tape.CommandKey, Args: []string{"tab"}, Delay: 50 * time.Millisecond}},
		{"Ctrl+W", tape.Command{Type: tape.CommandKey, Args: []string{"ctrl+w"}}},
		{"Ctrl+Shift+Tab", tape.Command{Type: tape.CommandKey, Args: []string{"ctrl+shift+tab"}}},
		{"Alt+F1", tape.Command{Type: tape.CommandKey, Args: []string{"alt+f1"}}},
		{`Type "ada"`, tape.Command{Type: tape.CommandText, Args: []string{"ada"}}},
		{`Type@20ms "hi"`, tape.Command{Type: tape.CommandText, Args: []string{"hi"}, Delay: 20 * time.Millisecond}},
		{"Click 10 4", tape.Command{Type: tape.CommandClick, Ints: []int{10, 4}}},
		{"DoubleClick 3 2", tape.Command{Type: tape.CommandDoubleClick, Ints: []int{3, 2}}},
		{"Drag 10 2 20 4", tape.Command{Type: tape.CommandDrag, Ints: []int{10, 2, 20, 4}}},
		{"Resize 100 30", tape.Command{Type: tape.CommandResize, Ints: []int{100, 30}}},
		{"Open journal", tape.Command{Type: tape.CommandOpen, Args: []string{"journal"}}},
		{"Open journal go-tips", tape.Command{Type: tape.CommandOpen, Args: []string{"journal", "go-tips"}}},
		{`Post "go-tips"`, tape.Command{Type: tape.CommandPost, Args: []string{"go-tips"}}},
		{"Close", tape.Command{Type: tape.CommandClose}},
		{"Close post:go-tips", tape.Command{Type: tape.CommandClose, Args: []string{"post:go-tips"}}},
		{"Focus about", tape.Command{Type: tape.CommandFocus, Args: []string{"about"}}},
		{"Minimize", tape.Command{Type: tape.CommandMinimize}},
		{"Maximize journal", tape.Command{Type: tape.CommandMaximize, Args: []string{"journal"}}},
		{"Login ada", tape.Command{Type: tape.CommandLogin, Args: []string{"ada"}}},
		{"Logout", tape.Command{Type: tape.CommandLogout}},
		{"Reload", tape.Command{Type: tape.CommandReload}},
		{"Sleep 1.5s", tape.Command{Type: tape.CommandSleep, Delay: 1500 * time.Millisecond}},
		{"Sleep 250", tape.Command{Type: tape.CommandSleep, Delay: 250 * time.Millisecond}},
		{"Wait /Go Tips/", tape.Command{Type: tape.CommandWait, Args: []string{"Go Tips"}}},
		{`Wait@2s "+25 XP"`, tape.Command{Type: tape.CommandWait, Args: []string{`\+25 XP`}, Delay: 2 * time.Second}},
		{"Screenshot", tape.Command{Type: tape.CommandScreenshot}},
		{"Screenshot journal", tape.Command{Type: tape.CommandScreenshot, Args: []string{"journal"}}},
		{"Set Width 100", tape.Command{Type: tape.CommandSet, Args: []string{"Width", "100"}}},
		{"Set Timeout 2s", tape.Command{Type: tape.CommandSet, Args: []string{"Timeout", "2s"}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmds, err := tape.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if len(cmds) != 1 {
				t.Fatalf("got %d commands, want 1", len(cmds))
			}
			want := tt.want
			want.Line = 1
			if !reflect.DeepEqual(cmds[0], want) {
				t.Errorf("got %#v\nwant %#v", cmds[0], want)
			}
		})
	}
}

func TestParseScript(t *testing.T) {
	script := `# open the journal and read the first post
Set Width 100

Open journal
Enter
Wait /Go Tips/
Ctrl+W
`
	cmds, err := tape.Parse(script)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var types []tape.CommandType
	var lines []int
	for _, c := range cmds {
		types = append(types, c.Type)
		lines = append(lines, c.Line)
	}
	wantTypes := []tape.CommandType{tape.CommandSet, tape.CommandOpen, tape.CommandKey, tape.CommandWait, tape.CommandKey}
	if !reflect.DeepEqual(types, wantTypes) {
		t.Errorf("types = %v, want %v", types, wantTypes)
	}
	if want := []int{2, 4, 5, 6, 7}; !reflect.DeepEqual(lines, want) {
		t.Errorf("lines = %v, want %v", lines, want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Bogus", "unknown command"},
		{"Click 10", "expected x and y"},
		{"Drag 1 2 3", "expected from x"},
		{"Type", "Type needs a string"},
		{"Open", "Open needs an app id"},
		{"Sleep", "Sleep needs a duration"},
		{"Wait", "Wait needs /regex/"},
		{"Wait /(/", "bad pattern"},
		{"Set Width", "needs a value"},
		{"Ctrl W", "expected + after ctrl"},
		{"Ctrl+", "expected a key"},
		{"Enter Tab", "unexpected"},
		{"Logout now", "unexpected"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := tape.Parse(tt.input)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
			if !strings.Contains(err.Error(), "line 1") {
				t.Errorf("error %q has no line number", err)
			}
		})
	}
}

func TestParseKeepsGoodLines(t *testing.T) {
	cmds, err := tape.Parse("Enter\nBogus\nTab")
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error = %v, want a line 2 error", err)
	}
	if len(cmds) != 2 {
		t.Errorf("got %d commands, want 2", len(cmds))
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"100", 100 * time.Millisecond, false},
		{"2s", 2 * time.Second, false},
		{"1.5s", 1500 * time.Millisecond, false},
		{"", 0, true},
		{"soon", 0, true},
	}
	for _, tt := range tests {
		got, err := tape.ParseDuration(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDuration(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestKeyMsg(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"enter", "enter"},
		{"ctrl+w", "ctrl+w"},
		{"alt+f", "alt+f"},
		{"shift+tab", "shift+tab"},
		{"f1", "f1"},
		{"pgdown", "pgdown"},
		{"space", "space"},
		{"x", "x"},
	}
	for _, tt := range tests {
		msg, err := tape.KeyMsg(tt.in)
		if err != nil {
			t.Errorf("KeyMsg(%q): %v", tt.in, err)
			continue
		}
		if got := msg.String(); got != tt.want {
			t.Errorf("KeyMsg(%q).String() = %q, want %q", tt.in, got, tt.want)
		}
	}

	if msg, _ := tape.KeyMsg("x"); msg.Text != "x" {
		t.Errorf("plain rune has text %q", msg.Text)
	}
	if msg, _ := tape.KeyMsg("ctrl+x"); msg.Text != "" || msg.Mod != tea.ModCtrl {
		t.Errorf("ctrl+x = %#v", msg)
	}
	for _, bad := range []string{"hyper+x", "nosuchkey"} {
		if _, err := tape.KeyMsg(bad); err == nil {
			t.Errorf("KeyMsg(%q) should fail", bad)
		}
	}
}
