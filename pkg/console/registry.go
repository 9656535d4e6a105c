package console

import (
	"sort"
	"sync"
)

type Registry struct {
	mutex    sync.RWMutex
	commands map[string]Command
	groups   map[string][]string
}

func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
		groups:   make(map[string][]string),
	}
}

func (r *Registry) Register(command Command) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if command == nil {
		return ErrCommandRegistration.WithDetail("command", "nil")
	}

	name := command.Name()
	if name == "" {
		return ErrCommandRegistration.WithDetail("command", "empty name")
	}

	if _, exists := r.commands[name]; exists {
		return ErrCommandRegistration.WithDetail("command", name).WithDetail("reason", "already registered")
	}

	r.commands[name] = command

	group := command.Group()
	if group == "" {
		group = DefaultGroup
	}
	r.groups[group] = append(r.groups[group], name)

	return nil
}

func (r *Registry) Get(name string) (Command, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	command, exists := r.commands[name]
	return command, exists
}

func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Groups() map[string][]Command {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make(map[string][]Command)
	for group, names := range r.groups {
		commands := make([]Command, 0, len(names))
		for _, name := range names {
			if command, exists := r.commands[name]; exists && command != nil {
				commands = append(commands, command)
			}
		}
		sortCommands(commands)
		result[group] = commands
	}
	return result
}

func sortCommands(commands []Command) {
	sort.Slice(commands, func(i, j int) bool {
		return commands[i].Name() < commands[j].Name()
	})
}
