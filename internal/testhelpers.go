package internal

// CreateTestActivity creates an AbsoluteActivityRecord at game-time t
func CreateTestActivity(t float64, epoch int64, source MovementSource) *Record {
	return NewRecord(
		Pair{FieldGameTimeSecs, t},
		Pair{FieldMillisSinceEpoch, float64(epoch)},
		Pair{FieldRecordType, string(RecordTypeAbsoluteActivity)},
		Pair{FieldSenderTag, string(source)},
		Pair{"absolutePosition", map[string]any{"x": t * 0.1, "y": 1.5, "z": 0.0}},
		Pair{"absoluteRotation", map[string]any{"x": 0.0, "y": 0.0, "z": 0.0, "w": 1.0}},
	)
}

// CreateTestSceneEntry creates a scene marker at game-time t
func CreateTestSceneEntry(t float64, epoch int64, name string) *Record {
	return NewRecord(
		Pair{FieldGameTimeSecs, t},
		Pair{FieldMillisSinceEpoch, float64(epoch)},
		Pair{FieldRecordType, string(RecordTypeSceneEntry)},
		Pair{FieldSceneName, name},
	)
}

// CreateTestRecords returns the nine-record sample session in file order:
// movement at 1-3, "MainMenu" at 4, movement at 10, "GameLevel1" at 15,
// movement at 20 and 22, and a game setting at 25.
func CreateTestRecords() []*Record {
	return []*Record{
		CreateTestActivity(1, 1000, MovementHead),
		CreateTestActivity(2, 2000, MovementLeftHand),
		CreateTestActivity(3, 3000, MovementRightHand),
		CreateTestSceneEntry(4, 4000, "MainMenu"),
		CreateTestActivity(10, 10000, MovementHead),
		CreateTestSceneEntry(15, 15000, "GameLevel1"),
		CreateTestActivity(20, 20000, MovementHead),
		CreateTestActivity(22, 22000, MovementLeftHand),
		NewRecord(
			Pair{FieldGameTimeSecs, 25.0},
			Pair{FieldMillisSinceEpoch, 25000.0},
			Pair{FieldRecordType, string(RecordTypeGameSettings)},
			Pair{"setting", "volume"},
			Pair{"value", 0.8},
		),
	}
}

// CreateTestSession creates a session over CreateTestRecords
func CreateTestSession(path string) *Session {
	return NewSession(CreateTestRecords(), map[string]any{MetadataFilePath: path})
}

// CreateTestSessionWithRecords creates a session over custom records
func CreateTestSessionWithRecords(records []*Record) *Session {
	return NewSession(records, nil)
}
