package combat

// LogCapacity is the number of entries a combat log retains.
const LogCapacity = 10

// Log is the most-recent-first narrative feed of an encounter.
type Log []string

// Push inserts msg at the front and drops the oldest entries beyond LogCapacity.
//
// Postcondition: (*l)[0] == msg and len(*l) <= LogCapacity.
func (l *Log) Push(msg string) {
	next := make(Log, 0, min(len(*l)+1, LogCapacity))
	next = append(next, msg)
	for _, entry := range *l {
		if len(next) == LogCapacity {
			break
		}
		next = append(next, entry)
	}
	*l = next
}
