package stats

// DeleteSession permanently removes the session with the given ID on behalf
// of userID.
func (s *Service) DeleteSession(userID, id string) error {
	if _, err := s.owned(userID, id); err != nil {
		return err
	}

	return s.db.DeleteSession(id)
}
