package linebot

import (
	"testing"

	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
)

func TestSourceIDs(t *testing.T) {
	gid, uid := sourceIDs(webhook.GroupSource{GroupId: "g1", UserId: "u1"})
	if gid != "g1" || uid != "u1" {
		t.Fatalf("group source: %q %q", gid, uid)
	}

	gid, uid = sourceIDs(webhook.RoomSource{RoomId: "r1", UserId: "u2"})
	if gid != "r1" || uid != "u2" {
		t.Fatalf("room source: %q %q", gid, uid)
	}

	gid, uid = sourceIDs(webhook.UserSource{UserId: "u3"})
	if gid != "" || uid != "u3" {
		t.Fatalf("user source: %q %q", gid, uid)
	}

	gid, uid = sourceIDs(nil)
	if gid != "" || uid != "" {
		t.Fatalf("nil source: %q %q", gid, uid)
	}
}
