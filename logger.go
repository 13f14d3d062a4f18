package pacmanrl

import "log"

// A Logger logs status messages which are produced during
// training.
type Logger interface {
	LogEpisode(episode int, total, running float64)
	LogUpdate(episode int)
	LogCheckpoint(path string)
}

// StandardLogger is a Logger which uses the log package.
//
// A field of name <N> controls whether or not the Log<N>
// method does anything.
type StandardLogger struct {
	Episode    bool
	Update     bool
	Checkpoint bool
}

// LogEpisode logs the result of an episode.
func (s *StandardLogger) LogEpisode(episode int, total, running float64) {
	if s.Episode {
		log.Printf("episode %d: reward=%f running_mean=%f", episode,
			total, running)
	}
}

// LogUpdate logs the fact that the weights were updated.
func (s *StandardLogger) LogUpdate(episode int) {
	if s.Update {
		log.Printf("update: episode=%d", episode)
	}
}

// LogCheckpoint logs the path a checkpoint was written
// to.
func (s *StandardLogger) LogCheckpoint(path string) {
	if s.Checkpoint {
		log.Printf("checkpoint: path=%s", path)
	}
}
