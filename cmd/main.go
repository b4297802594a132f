package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/dayboard-app/dayboard-backend/pkg/auth"
	"github.com/dayboard-app/dayboard-backend/pkg/calendar"
	"github.com/dayboard-app/dayboard-backend/pkg/communication"
	"github.com/dayboard-app/dayboard-backend/pkg/dashboard"
	"github.com/dayboard-app/dayboard-backend/pkg/environment"
	"github.com/dayboard-app/dayboard-backend/pkg/habits"
	"github.com/dayboard-app/dayboard-backend/pkg/locking"
	"github.com/dayboard-app/dayboard-backend/pkg/logger"
	"github.com/dayboard-app/dayboard-backend/pkg/notes"
	"github.com/dayboard-app/dayboard-backend/pkg/notifications"
	"github.com/dayboard-app/dayboard-backend/pkg/reminders"
	"github.com/dayboard-app/dayboard-backend/pkg/study"
	"github.com/dayboard-app/dayboard-backend/pkg/tasks"
	"github.com/dayboard-app/dayboard-backend/pkg/users"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	var logging logger.Interface = logger.Logger{}
	fmt.Println("Server is starting up...")

	environment.Initialize()

	client, err := mongo.NewClient(options.Client().ApplyURI(environment.Global.DatabaseUrl))
	if err != nil {
		log.Fatal(err)
	}

	var ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = client.Connect(ctx)
	if err != nil {
		log.Panic(err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		log.Panic(err)
	}

	defer func() {
		err := client.Disconnect(ctx)
		if err != nil {
			logging.Fatal(err)
		}
	}()

	fmt.Println("Database connected")

	db := client.Database(environment.Global.Database)

	userCollection := db.Collection("Users")
	taskCollection := db.Collection("Tasks")
	reminderCollection := db.Collection("Reminders")
	habitCollection := db.Collection("Habits")
	completionCollection := db.Collection("HabitCompletions")
	noteCollection := db.Collection("StickyNotes")
	folderCollection := db.Collection("NoteFolders")
	sessionCollection := db.Collection("StudySessions")
	goalCollection := db.Collection("StudyGoals")

	responseManager := communication.ResponseManager{Logger: logging}

	userRepository := users.UserRepository{DB: userCollection, Logger: logging}
	taskRepository := tasks.MongoDBTaskRepository{DB: taskCollection, Logger: logging}
	reminderRepository := reminders.MongoDBReminderRepository{DB: reminderCollection, Logger: logging}
	habitRepository := habits.MongoDBHabitRepository{Habits: habitCollection, Completions: completionCollection, Logger: logging}
	noteRepository := notes.MongoDBNoteRepository{Notes: noteCollection, Folders: folderCollection, Logger: logging}
	studyRepository := study.MongoDBStudyRepository{Sessions: sessionCollection, Goals: goalCollection, Logger: logging}

	var locker locking.LockerInterface = locking.NewLockerMemory()
	var eventsCache calendar.EventsCacheInterface

	if environment.Global.Redis != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     environment.Global.Redis,
			Password: environment.Global.RedisPassword,
		})

		err = redisClient.Ping(ctx).Err()
		if err != nil {
			log.Panic(err)
		}

		fmt.Println("Redis connected")

		locker = locking.NewLockerRedis(redisClient)
		eventsCache = calendar.NewEventsCacheRedis(redisClient)
	} else {
		eventsCache, err = calendar.NewEventsCacheMemory(128)
		if err != nil {
			log.Panic(err)
		}
	}

	newCalendarRepository := func(ctx context.Context, u *users.User) (calendar.RepositoryInterface, error) {
		return calendar.NewGoogleCalendarRepository(ctx, u, &userRepository, logging)
	}

	syncManager := calendar.NewSyncManager(&userRepository, eventsCache, locker, logging, newCalendarRepository)

	if environment.Global.GcpProjectID != "" {
		notificationController, err := notifications.NewNotificationController(ctx, &userRepository, logging)
		if err != nil {
			log.Panic(err)
		}
		reminderRepository.Subscribe(notificationController)
	}

	userHandler := users.Handler{UserRepository: &userRepository, Logger: logging, ResponseManager: &responseManager}
	taskHandler := tasks.Handler{TaskRepository: &taskRepository, Logger: logging, ResponseManager: &responseManager}
	reminderHandler := reminders.Handler{
		ReminderRepository:    &reminderRepository,
		UserRepository:        &userRepository,
		Logger:                logging,
		ResponseManager:       &responseManager,
		NewCalendarRepository: newCalendarRepository,
	}
	habitHandler := habits.Handler{HabitRepository: &habitRepository, Logger: logging, ResponseManager: &responseManager}
	noteHandler := notes.Handler{NoteRepository: &noteRepository, Logger: logging, ResponseManager: &responseManager}
	studyHandler := study.Handler{StudyRepository: &studyRepository, Logger: logging, ResponseManager: &responseManager}
	dashboardHandler := dashboard.Handler{
		TaskRepository:     &taskRepository,
		ReminderRepository: &reminderRepository,
		StudyRepository:    &studyRepository,
		SyncManager:        syncManager,
		Logger:             logging,
		ResponseManager:    &responseManager,
	}

	authMiddleware := auth.AuthenticationMiddleware{ErrorManager: &responseManager}

	r := mux.NewRouter()
	r.HandleFunc("/", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)

		_, err := fmt.Fprint(writer, "Welcome to the API! ✔")
		if err != nil {
			log.Printf("Error: %v\n", err)
		}
	})

	// The OAuth callback is hit by Google, not by a signed in client
	r.HandleFunc("/v1/calendar/google/callback", userHandler.CalendarCallback).Methods(http.MethodGet)

	authenticated := r.PathPrefix("/v1").Subrouter()
	authenticated.Use(authMiddleware.Middleware)

	authenticated.HandleFunc("/user", userHandler.UserGet).Methods(http.MethodGet)
	authenticated.HandleFunc("/user/device", userHandler.UserAddDevice).Methods(http.MethodPost)
	authenticated.HandleFunc("/calendar/google/connect", userHandler.CalendarConnect).Methods(http.MethodPost)
	authenticated.HandleFunc("/calendar/google/disconnect", userHandler.CalendarDisconnect).Methods(http.MethodPost)

	authenticated.HandleFunc("/task", taskHandler.TaskAdd).Methods(http.MethodPost)
	authenticated.HandleFunc("/tasks", taskHandler.GetAllTasks).Methods(http.MethodGet)
	authenticated.HandleFunc("/task/{taskID}/toggle", taskHandler.TaskToggle).Methods(http.MethodPatch)
	authenticated.HandleFunc("/task/{taskID}", taskHandler.TaskDelete).Methods(http.MethodDelete)

	authenticated.HandleFunc("/reminder", reminderHandler.ReminderAdd).Methods(http.MethodPost)
	authenticated.HandleFunc("/reminders", reminderHandler.GetAllReminders).Methods(http.MethodGet)
	authenticated.HandleFunc("/reminder/{reminderID}", reminderHandler.ReminderUpdate).Methods(http.MethodPut)
	authenticated.HandleFunc("/reminder/{reminderID}/toggle", reminderHandler.ReminderToggle).Methods(http.MethodPatch)
	authenticated.HandleFunc("/reminder/{reminderID}", reminderHandler.ReminderDelete).Methods(http.MethodDelete)

	authenticated.HandleFunc("/habit", habitHandler.HabitAdd).Methods(http.MethodPost)
	authenticated.HandleFunc("/habits", habitHandler.GetAllHabits).Methods(http.MethodGet)
	authenticated.HandleFunc("/habit/{habitID}", habitHandler.HabitUpdate).Methods(http.MethodPut)
	authenticated.HandleFunc("/habit/{habitID}", habitHandler.HabitDelete).Methods(http.MethodDelete)
	authenticated.HandleFunc("/habit/{habitID}/completion", habitHandler.CompletionPut).Methods(http.MethodPut)
	authenticated.HandleFunc("/habit/{habitID}/stats", habitHandler.HabitStats).Methods(http.MethodGet)

	authenticated.HandleFunc("/note", noteHandler.NoteAdd).Methods(http.MethodPost)
	authenticated.HandleFunc("/notes", noteHandler.GetAllNotes).Methods(http.MethodGet)
	authenticated.HandleFunc("/note/{noteID}", noteHandler.NoteUpdate).Methods(http.MethodPut)
	authenticated.HandleFunc("/note/{noteID}", noteHandler.NoteDelete).Methods(http.MethodDelete)
	authenticated.HandleFunc("/folder", noteHandler.FolderAdd).Methods(http.MethodPost)
	authenticated.HandleFunc("/folders", noteHandler.GetAllFolders).Methods(http.MethodGet)
	authenticated.HandleFunc("/folder/{folderID}", noteHandler.FolderDelete).Methods(http.MethodDelete)

	authenticated.HandleFunc("/study/session", studyHandler.SessionAdd).Methods(http.MethodPost)
	authenticated.HandleFunc("/study/sessions", studyHandler.GetAllSessions).Methods(http.MethodGet)
	authenticated.HandleFunc("/study/session/{sessionID}", studyHandler.SessionDelete).Methods(http.MethodDelete)
	authenticated.HandleFunc("/study/goal", studyHandler.GoalPut).Methods(http.MethodPut)
	authenticated.HandleFunc("/study/goal", studyHandler.GoalGet).Methods(http.MethodGet)

	authenticated.HandleFunc("/dashboard/day", dashboardHandler.DashboardDay).Methods(http.MethodGet)
	authenticated.HandleFunc("/dashboard/upcoming", dashboardHandler.DashboardUpcoming).Methods(http.MethodGet)
	authenticated.HandleFunc("/dashboard/series/tasks", dashboardHandler.TaskSeries).Methods(http.MethodGet)
	authenticated.HandleFunc("/dashboard/series/study", dashboardHandler.StudySeries).Methods(http.MethodGet)

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Content-Type", "application/json")
			next.ServeHTTP(w, r)
		})
	})

	port := environment.Global.Port
	if port == "" {
		port = "80"
	}

	http.Handle("/", r)
	log.Panic(http.ListenAndServe(":"+port, r))
}
