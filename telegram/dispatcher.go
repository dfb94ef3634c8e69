package telegram

import "sync"

// dispatcher runs jobs of the same chat one after the other, in submission
// order. Jobs of different chats run concurrently.
type dispatcher struct {
	mu     sync.Mutex
	queues map[int64][]func()
	wg     sync.WaitGroup
}

func newDispatcher() *dispatcher {
	return &dispatcher{queues: make(map[int64][]func())}
}

func (d *dispatcher) submit(chat int64, job func()) {
	d.mu.Lock()
	pending, draining := d.queues[chat]
	d.queues[chat] = append(pending, job)
	if !draining {
		d.wg.Add(1)
	}
	d.mu.Unlock()

	if !draining {
		go d.drain(chat)
	}
}

func (d *dispatcher) drain(chat int64) {
	defer d.wg.Done()

	for {
		d.mu.Lock()
		queue := d.queues[chat]
		if len(queue) == 0 {
			delete(d.queues, chat)
			d.mu.Unlock()
			return
		}
		job := queue[0]
		d.queues[chat] = queue[1:]
		d.mu.Unlock()

		job()
	}
}

func (d *dispatcher) wait() {
	d.wg.Wait()
}
