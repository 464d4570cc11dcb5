package localstore

import (
	"time"

	"github.com/ehr051/task-manager-api/internal/domain/entity"
)

// seedProjectID proyecto de ejemplo cuyas tareas se siembran en la primera
// carga local si no hay snapshot guardado.
const seedProjectID = "task-manager"

// defaultProjects proyectos de ejemplo que se muestran cuando todavía no hay
// nada guardado localmente. Los stats arrancan en cero y se recalculan con la
// primera mutación.
func defaultProjects() []*entity.Project {
	now := time.Now()
	return []*entity.Project{
		{
			ID:          "bendito-cafe",
			Name:        "Bendito Café",
			Description: "Sistema de gestión para cafetería",
			CreatedBy:   "EHR051",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          seedProjectID,
			Name:        "Task Manager",
			Description: "Administrador de tareas colaborativo",
			CreatedBy:   "EHR051",
			Stats:       entity.TaskStats{Pending: 12},
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}

// defaultTasks plan de arranque del proyecto de ejemplo.
func defaultTasks() []*entity.Task {
	base := time.Now()
	seed := []struct {
		title    string
		priority string
		tag      string
	}{
		{"Definir visión y objetivos del proyecto", entity.PriorityAlta, "planificación"},
		{"Documentar requerimientos funcionales", entity.PriorityAlta, "requerimientos"},
		{"Documentar requerimientos no funcionales", entity.PriorityAlta, "requerimientos"},
		{"Crear hoja de ruta (Roadmap)", entity.PriorityAlta, "planificación"},
		{"Definir stack tecnológico", entity.PriorityAlta, "técnico"},
		{"Diseñar arquitectura del sistema", entity.PriorityMedia, "arquitectura"},
		{"Crear wireframes/prototipos UI", entity.PriorityMedia, "diseño"},
		{"Configurar entorno de desarrollo", entity.PriorityMedia, "setup"},
		{"Diseñar modelo de base de datos", entity.PriorityMedia, "base de datos"},
		{"Planificar primer sprint", entity.PriorityMedia, "sprint"},
		{"Definir MVP", entity.PriorityAlta, "MVP"},
		{"Crear documentación inicial", entity.PriorityBaja, "documentación"},
	}
	tasks := make([]*entity.Task, 0, len(seed))
	for i, s := range seed {
		created := base.Add(time.Duration(i) * time.Millisecond)
		tasks = append(tasks, &entity.Task{
			ID:         int64(i + 1),
			ProjectID:  seedProjectID,
			Title:      s.title,
			Status:     entity.StatusPending,
			Priority:   s.priority,
			Tags:       []string{s.tag},
			AssignedTo: []string{},
			CreatedAt:  created,
			UpdatedAt:  created,
		})
	}
	return tasks
}

// defaultUsers espejo local de la tabla de usuarios de respaldo, para que el
// listado de asignables funcione sin backend remoto. La autenticación local
// NO pasa por aquí: usa la tabla fija del proveedor de sesión.
func defaultUsers() []*entity.User {
	now := time.Now()
	return []*entity.User{
		{Username: "EHR051", Name: "EHR051", Password: "R4T4G4T4", Role: entity.RoleAdmin, CreatedAt: now},
		{Username: "FGR134", Name: "FGR134", Password: "R4T4G4T4", Role: entity.RoleUser, CreatedAt: now},
	}
}
