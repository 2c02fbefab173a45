// meta/meta.go
package meta

import "time"

// DefaultGameClock is the game time of each side unless configured otherwise.
const DefaultGameClock = 10 * time.Minute

// MAX_MOVES caps a self-play game; a game reaching it counts as a draw.
const MAX_MOVES = 500

// SELF_PLAY_GAMES defines the number of games the soak harness plays.
const SELF_PLAY_GAMES = 20

// MAX_REJECTIONS is how many illegal moves a player may submit in a row before forfeiting.
const MAX_REJECTIONS = 3
