package listing

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/net/html"
)

// The listing page is server-rendered; its data arrives as a streaming
// push inside an inline script block. The framing below matches the
// rendering framework's output and is version-fragile: when the
// framework changes its payload shape, extraction must fail loudly
// rather than silently harvest nothing.
const (
	pushPrefix    = "self.__next_f.push"
	payloadMarker = `([1,"f:`
	framePrefix   = `([1,"f:[\"$\",\"div\",null,`
	frameSuffix   = `]\n"])`
)

// LocatePayload finds the script block carrying the contest payload and
// recovers the JSON document embedded in it. The framework can emit
// more than one matching block per page; the last one is authoritative.
func LocatePayload(page string) (string, error) {
	payload := ""
	found := false
	for _, block := range scriptBlocks(page) {
		blob := strings.TrimPrefix(strings.TrimSpace(block), pushPrefix)
		if !strings.HasPrefix(blob, payloadMarker) {
			continue
		}
		blob = strings.TrimPrefix(blob, framePrefix)
		blob = strings.TrimSuffix(blob, frameSuffix)
		payload = strings.ReplaceAll(blob, `\"`, `"`)
		found = true
	}
	if !found {
		return "", fmt.Errorf("no script block carries the %q contest payload marker", payloadMarker)
	}
	return payload, nil
}

// ExtractContests parses the listing page and returns every contest
// record found in the embedded payload. Records that fail to decode
// are dropped; the drop count is logged so data loss is visible.
func ExtractContests(page string) ([]Contest, error) {
	payload, err := LocatePayload(page)
	if err != nil {
		return nil, err
	}

	rawContests, err := contestArray(payload)
	if err != nil {
		return nil, err
	}

	contests := make([]Contest, 0, len(rawContests))
	dropped := 0
	for _, raw := range rawContests {
		var c Contest
		if err := json.Unmarshal(raw, &c); err != nil {
			dropped++
			continue
		}
		contests = append(contests, c)
	}
	if dropped > 0 {
		slog.Warn("dropped malformed contest records from listing payload", "count", dropped)
	}
	return contests, nil
}

// contestArray descends the framework-specific fixed path
// children[3].children[3].contests to the contest array. Any deviation
// from that shape is surfaced as an error so upstream format drift is
// caught early.
func contestArray(payload string) ([]json.RawMessage, error) {
	type node struct {
		Children []json.RawMessage `json:"children"`
		Contests []json.RawMessage `json:"contests"`
	}

	var root node
	if err := json.Unmarshal([]byte(payload), &root); err != nil {
		return nil, fmt.Errorf("failed to parse listing payload: %w", err)
	}

	current := root
	for depth := 0; depth < 2; depth++ {
		if len(current.Children) < 4 {
			return nil, fmt.Errorf("unexpected payload shape: children[3] missing at depth %d", depth)
		}
		var next node
		if err := json.Unmarshal(current.Children[3], &next); err != nil {
			return nil, fmt.Errorf("unexpected payload shape at depth %d: %w", depth, err)
		}
		current = next
	}

	if current.Contests == nil {
		return nil, fmt.Errorf("unexpected payload shape: contests array missing")
	}
	return current.Contests, nil
}

func scriptBlocks(page string) []string {
	var blocks []string
	tz := html.NewTokenizer(strings.NewReader(page))
	inScript := false
	for {
		switch tz.Next() {
		case html.ErrorToken:
			return blocks
		case html.StartTagToken:
			name, _ := tz.TagName()
			inScript = string(name) == "script"
		case html.TextToken:
			if inScript {
				blocks = append(blocks, string(tz.Text()))
			}
		case html.EndTagToken:
			inScript = false
		}
	}
}
