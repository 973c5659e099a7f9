package booking

import "joeyjob/models"

// FindServiceNode searches the service tree depth-first for the node with
// the given id.
func FindServiceNode(root *models.ServiceNode, serviceID string) *models.ServiceNode {
	if root == nil {
		return nil
	}
	if root.ID == serviceID {
		return root
	}
	for i := range root.Children {
		if found := FindServiceNode(&root.Children[i], serviceID); found != nil {
			return found
		}
	}
	return nil
}
