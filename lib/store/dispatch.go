package store

// Dispatch routes a command to the matching IStore method and converts the
// outcome to a Result. Commands of an unknown kind are rejected here and are
// never seen by the store, so they do not show up in the statistics.
func Dispatch(s IStore, cmd Command) Result {
	switch cmd.Kind {
	case KindPut:
		return payloadResult(s.Put(cmd.Key, cmd.Value))
	case KindPutList:
		return payloadResult(s.PutList(cmd.Key, cmd.Value))
	case KindGet:
		val, err := s.Get(cmd.Key)
		if err != nil {
			return NewErrorResult(err)
		}
		return NewResult(val.String())
	case KindGetList:
		val, err := s.GetList(cmd.Key)
		if err != nil {
			return NewErrorResult(err)
		}
		return NewResult(val.String())
	case KindIncrement:
		return payloadResult(s.Increment(cmd.Key))
	case KindAppend:
		return payloadResult(s.Append(cmd.Key, cmd.Value))
	case KindDelete:
		return payloadResult(s.Delete(cmd.Key))
	case KindStats:
		return NewResult(s.Stats().String())
	case KindUnknown:
	}
	return NewErrorResult(Errorf(RetCUnknownCommand, "Unknown command type [%s]", cmd.Name))
}

func payloadResult(payload string, err error) Result {
	if err != nil {
		return NewErrorResult(err)
	}
	return NewResult(payload)
}
