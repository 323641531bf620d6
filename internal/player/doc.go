// package player owns the single "now playing" video slot.
//
// A [Player] is the only writer of the slot; views read it through [Player.Current] or
// [Player.Subscribe]. Switching to a different video happens in two steps: the slot is cleared
// and observers are notified, then the new video is committed on the next tick of the injected
// [Scheduler]. Views that embed a player keyed by video id therefore always tear the old embed
// down before the new one is created, which restarts playback cleanly. Do not collapse the two
// steps into one.
package player
