package engine

// CanAcceptTask gates new commitments on remaining HP.
func CanAcceptTask(s PlayerStatus) error {
	if s.CurrentHP <= 0 {
		return newError(CodeResourceExhausted, "",
			"HP is depleted (%d/%d); complete a %s task to recover", s.CurrentHP, s.MaxHP, TagRecovery)
	}
	return nil
}

// CanAttachSubtask rejects parents that would make the hierarchy deeper
// than project → subtask.
func CanAttachSubtask(parent Task) error {
	if parent.Kind == KindSubtask || parent.HasParent() {
		return newError(CodePreconditionFailed, parent.ID,
			"task %s is itself a subtask; projects nest one level only", parent.ID)
	}
	return nil
}
