package host

// Recorder queues every snapshot it receives.
type Recorder struct {
	Snapshots [][]uint32
}

var _ Observer = (*Recorder)(nil)

// Reset discards all recorded snapshots.
func (rc *Recorder) Reset() {
	rc.Snapshots = nil
}

// Update appends the snapshot.
func (rc *Recorder) Update(registers []uint32) {
	rc.Snapshots = append(rc.Snapshots, registers)
}

// Len returns the number of queued snapshots.
func (rc *Recorder) Len() int {
	return len(rc.Snapshots)
}

// Next removes and returns the oldest snapshot.
func (rc *Recorder) Next() (registers []uint32, ok bool) {
	if len(rc.Snapshots) > 0 {
		ok = true
		registers = rc.Snapshots[0]
		rc.Snapshots = rc.Snapshots[1:]
	}
	return
}

// Last returns the most recent snapshot without removing it.
func (rc *Recorder) Last() (registers []uint32, ok bool) {
	if len(rc.Snapshots) > 0 {
		ok = true
		registers = rc.Snapshots[len(rc.Snapshots)-1]
	}
	return
}
