package container

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/barnettZQG/inject"
)

// injectTag is the struct tag naming the key a field is populated from.
const injectTag = "inject"

// Populate fills every exported field of target tagged `inject:"<key>"` with
// the instance resolved for that key. target must be a pointer to a struct.
func (c *Container) Populate(target any) error {
	return populate(c, target)
}

// PopulateFrom is Populate for any Resolver, such as the one handed to a
// factory.
func PopulateFrom(r Resolver, target any) error {
	return populate(r, target)
}

func populate(r Resolver, target any) error {
	keys, err := injectedKeys(target)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	var graph inject.Graph
	for _, key := range keys {
		instance, err := r.Resolve(key)
		if err != nil {
			return err
		}
		if err := graph.Provide(&inject.Object{Name: string(key), Value: instance}); err != nil {
			return fmt.Errorf("failed to provide %s: %w", key, err)
		}
	}

	if err := graph.Provide(&inject.Object{Value: target}); err != nil {
		return fmt.Errorf("failed to provide %T: %w", target, err)
	}
	if err := graph.Populate(); err != nil {
		return fmt.Errorf("failed to populate %T: %w", target, err)
	}
	return nil
}

// injectedKeys lists the distinct keys named by target's inject tags.
func injectedKeys(target any) ([]Key, error) {
	t := reflect.TypeOf(target)
	if t == nil || t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: populate target must be a pointer to a struct, got %T", ErrInvalidRegistration, target)
	}

	var (
		keys []Key
		seen = make(map[Key]struct{})
	)
	st := t.Elem()
	for i := 0; i < st.NumField(); i++ {
		tag, ok := st.Field(i).Tag.Lookup(injectTag)
		if !ok {
			continue
		}
		name := strings.TrimSpace(tag)
		if name == "" {
			return nil, fmt.Errorf("%w: field %s.%s has an empty inject key", ErrInvalidRegistration, st.Name(), st.Field(i).Name)
		}
		key := Key(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys, nil
}
