// Package keypoints writes and reads the versioned people JSON document.
//
// A document holds one object per detected person and, optionally, the raw body-part
// candidates that were not associated with anyone:
//
//	{
//		"version": "1.3",
//		"people": [
//			{"pose_keypoints_2d": [x,y,score,...], "face_keypoints_2d": [...]},
//			...
//		],
//		"part_candidates": {"0": [x,y,score,...], "1": [...]}
//	}
//
// Each person field comes from one Entry. A 3-D entry shaped [person, part, channel]
// contributes its slice for that person; a 1-D entry is not indexed by person and is
// repeated verbatim in every person object. Entries with no data for a person emit an
// empty array so every person object carries the same keys in the same order.
//
// # Version History
//
//	0.1  body keypoints (2-D)
//	1.0  face and hands (2-D)
//	1.1  part candidates
//	1.2  body, face and hands (3-D)
//	1.3  person ID
package keypoints
